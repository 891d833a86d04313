// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads csvdiff's optional YAML configuration and exposes typed
// accessors over dotted keys. The file is $CSVDIFF_CFG_FILE when set, else
// csvdiff.yaml in os.UserConfigDir():
//   - Linux: $XDG_CONFIG_HOME/csvdiff.yaml or $HOME/.config/csvdiff.yaml
//   - macOS: $HOME/Library/Application Support/csvdiff.yaml
//   - Windows: %AppData%/csvdiff.yaml
//
// A missing file is not an error for callers that pass a default.
package config
