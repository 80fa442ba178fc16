// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierValidator(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{"oscal_lib", ""},
		{"_x1", ""},
		{"", "name is required"},
		{"1abc", "must start with letter or underscore"},
		{"oscal-lib", "must contain only letters, numbers, underscores"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := identifierValidator(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequiredValidator(t *testing.T) {
	v := requiredValidator("schema path")
	assert.NoError(t, v("x"))
	assert.EqualError(t, v(""), "schema path is required")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"A <a@example.com>", "B"}, SplitList(" A <a@example.com>, ,B "))
	assert.Nil(t, SplitList(""))
}

func TestRunGenerateForm_FormatSet(t *testing.T) {
	format := "rust"
	require.NoError(t, RunGenerateForm(&format, []string{"markdown", "rust"}))
	assert.Equal(t, "rust", format)
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, []ResultField{{Label: "Files", Value: "3"}}, "done")
	assert.Contains(t, buf.String(), "Files:")
	assert.Contains(t, buf.String(), "3")
	assert.Contains(t, buf.String(), "done")

	buf.Reset()
	PrintWarnings(&buf, []string{"careful"})
	assert.Contains(t, buf.String(), "careful")
}
