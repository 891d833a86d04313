// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// Type is the loaded configuration document.
//
// Fields:
//   - Source: path of the YAML file loaded.
//   - Namespace: optional key prefix tried before the bare key (e.g. "diff"
//     makes "cutoff" resolve "diff.cutoff" first).
//   - Data: raw tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// ErrNoConfig means no config file exists in the standard location.
var ErrNoConfig = errors.New("no config file found in standard locations")

// Config is the process wide configuration, loaded lazily.
var Config Type

func init() {
	_, _ = Load()
}

// lookup resolves key, reloading first if nothing is loaded yet. A single
// default suppresses the not found error; more than one is an error.
func lookup[T any](key string, defaultValue []T) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err == nil {
		return val, nil
	}
	if len(defaultValue) == 1 {
		return defaultValue[0], nil
	}
	return nil, err
}

// GetString returns the string at key. Returns an error if the value exists
// but is not a string.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key, defaultValue)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}
	return s, nil
}

// GetInt returns the integer at key. YAML numbers may decode as int, int64 or
// float64; floats are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key, defaultValue)
	if err != nil {
		return 0, err
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: value is not an int", key)
	}
}

// GetFloat returns the number at key as a float64.
func GetFloat(key string, defaultValue ...float64) (float64, error) {
	val, err := lookup(key, defaultValue)
	if err != nil {
		return 0, err
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s: value is not a number", key)
	}
}

// GetBool returns the boolean at key.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := lookup(key, defaultValue)
	if err != nil {
		return false, err
	}
	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("%s: value is not a bool", key)
	}
	return b, nil
}

// GetStringSlice returns the list of strings at key.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key, defaultValue)
	if err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("slice element is not a string")
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("%s: value is not a slice", key)
	}
}

// Load reads the config file and replaces the global Config. The namespace
// of the previous Config is kept.
func Load() (Type, error) {
	path, err := configFile()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
	}
	return Config, nil
}

// get walks the tree along a dotted key. With a Namespace the prefixed key
// wins over the bare one.
func (cfg *Type) get(kspec string) (any, error) {
	candidates := []string{kspec}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidates {
		if v, ok := walk(cfg.Data, strings.Split(key, ".")); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

func walk(node any, keys []string) (any, bool) {
	for _, k := range keys {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if node, ok = m[k]; !ok {
			return nil, false
		}
	}
	return node, true
}

// configFile returns the path of the YAML config file. CSVDIFF_CFG_FILE is
// taken as the full path when set; otherwise csvdiff.yaml in the user config
// directory. The file must exist and not be a directory.
func configFile() (string, error) {
	if cfgPath := os.Getenv("CSVDIFF_CFG_FILE"); cfgPath != "" {
		fi, err := os.Stat(cfgPath)
		if err != nil {
			return "", fmt.Errorf("config file not found at CSVDIFF_CFG_FILE path: %s", cfgPath)
		}
		if fi.IsDir() {
			return "", fmt.Errorf("CSVDIFF_CFG_FILE points to a directory: %s", cfgPath)
		}
		log.Debugf("using config file from CSVDIFF_CFG_FILE: %s", cfgPath)
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, "csvdiff.yaml")
	if fi, err := os.Stat(file); err == nil && !fi.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}
	return "", ErrNoConfig
}
