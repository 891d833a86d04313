// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"

	"github.com/tfctl/csvdiff/internal/config"
	"github.com/tfctl/csvdiff/internal/source"
)

// Picker chooses two snapshots out of a directory listing, oldest first. An
// empty result means the user backed out.
type Picker func([]source.Snapshot) ([]source.Snapshot, error)

// Meta contains runtime inputs shared by the command: CLI arguments, loaded
// configuration, context, and the process handles the command reads from.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context

	// Stdin feeds the "-" dataset. Nil means os.Stdin.
	Stdin io.Reader
	// Pick runs when the only argument is a directory. Nil means the
	// interactive picker.
	Pick Picker
}
