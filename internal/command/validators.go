// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/tfctl/csvdiff/internal/attrs"
	"github.com/tfctl/csvdiff/internal/differ"
	"github.com/tfctl/csvdiff/internal/table"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

var validOutputFlagValues = []string{"text", "json", "yaml"}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// FormatValidator accepts an empty value, meaning detect from the extension.
func FormatValidator(value any) error {
	s, _ := value.(string)
	if s != "" && !slices.Contains(table.Formats, s) {
		return fmt.Errorf("must be one of %v", table.Formats)
	}
	return nil
}

func CutoffValidator(value any) error {
	c, ok := value.(float64)
	if !ok {
		return fmt.Errorf("cutoff must be a number, got %T", value)
	}
	return differ.ValidateCutoff(c)
}

// ColumnsValidator rejects --columns values that don't parse.
func ColumnsValidator(value any) error {
	s, _ := value.(string)
	var cols attrs.AttrList
	return cols.Set(s)
}
