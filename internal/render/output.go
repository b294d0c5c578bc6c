// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/cardex/pkg/types"
)

// ParseFormat validates an output-type selector from the CLI.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch types.OutputFormat(s) {
	case types.OutputCSV:
		return types.OutputCSV, nil
	case types.OutputPDF:
		return types.OutputPDF, nil
	}
	return "", fmt.Errorf("unknown output type %q (want csv or pdf)", s)
}

// CheckExtension verifies that the output path's extension matches the
// selected format. Runs before any parsing so a mismatch fails fast.
func CheckExtension(path string, format types.OutputFormat) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "."+string(format) {
		return fmt.Errorf("output file extension %q does not match the output type %q", ext, format)
	}
	return nil
}
