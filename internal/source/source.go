// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/table"
)

// ErrStdinTwice is returned when both sides of a diff name stdin.
var ErrStdinTwice = errors.New("only one dataset can be read from stdin")

// Kind classifies a dataset spec.
type Kind int

const (
	KindFile Kind = iota
	KindStdin
	KindS3
	KindPostgres
)

func (k Kind) String() string {
	switch k {
	case KindStdin:
		return "stdin"
	case KindS3:
		return "s3"
	case KindPostgres:
		return "postgres"
	default:
		return "file"
	}
}

// Options carry everything Open needs beyond the dataset spec.
type Options struct {
	// Format and JSONPath are passed to table.Read for stdin, file and S3
	// sources.
	Format   table.Format
	JSONPath string

	// S3 client overrides. Empty inherits the shell's AWS setup.
	Region   string
	Profile  string
	Endpoint string

	// Stdin defaults to os.Stdin.
	Stdin io.Reader
}

func (o Options) tableOptions() table.Options {
	return table.Options{Format: o.Format, JSONPath: o.JSONPath}
}

// Classify reports which kind of source spec names.
func Classify(spec string) Kind {
	switch {
	case spec == "-":
		return KindStdin
	case strings.HasPrefix(spec, "s3://"):
		return KindS3
	case strings.HasPrefix(spec, "postgres://"), strings.HasPrefix(spec, "postgresql://"):
		return KindPostgres
	default:
		return KindFile
	}
}

// Check validates a set of specs before any of them is opened.
func Check(specs ...string) error {
	stdin := 0
	for _, spec := range specs {
		if spec == "" {
			return errors.New("empty dataset name")
		}
		if Classify(spec) == KindStdin {
			stdin++
		}
	}
	if stdin > 1 {
		return ErrStdinTwice
	}
	return nil
}

// Open loads the dataset named by spec.
func Open(ctx context.Context, spec string, opts Options) (*table.Dataset, error) {
	kind := Classify(spec)
	log.Debugf("open %s source: %s", kind, spec)

	switch kind {
	case KindStdin:
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		return table.Read(r, "stdin", opts.tableOptions())
	case KindS3:
		return openS3(ctx, spec, opts)
	case KindPostgres:
		return openPostgres(ctx, spec)
	default:
		return openFile(spec, opts)
	}
}

func openFile(path string, opts Options) (*table.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return table.Read(f, path, opts.tableOptions())
}
