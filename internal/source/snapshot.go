// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Snapshot is a dataset file offered by the picker.
type Snapshot struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// ListDir returns the dataset files directly inside dir, newest first.
// Hidden files and files without a dataset extension are skipped.
func ListDir(dir string) ([]Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !isDataset(name) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		snaps = append(snaps, Snapshot{
			Name:    name,
			Path:    filepath.Join(dir, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].ModTime.After(snaps[j].ModTime)
	})
	return snaps, nil
}

func isDataset(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".tsv", ".tab", ".json":
		return true
	}
	return false
}

// IsDir reports whether spec names a local directory.
func IsDir(spec string) bool {
	if Classify(spec) != KindFile {
		return false
	}
	fi, err := os.Stat(spec)
	return err == nil && fi.IsDir()
}
