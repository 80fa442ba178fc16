// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import "github.com/charmbracelet/huh"

// FormatSelect returns a select field for choosing the output format.
func FormatSelect(value *string, formats []string) *huh.Select[string] {
	options := make([]huh.Option[string], len(formats))
	for i, f := range formats {
		options[i] = huh.NewOption(f, f)
	}
	return huh.NewSelect[string]().
		Title("Output format").
		Options(options...).
		Value(value)
}

// RunGenerateForm asks for the output format when it is not set.
func RunGenerateForm(format *string, formats []string) error {
	if *format != "" {
		return nil
	}
	return huh.NewForm(huh.NewGroup(FormatSelect(format, formats))).WithTheme(Theme()).Run()
}
