package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Grid file formats accepted by pkg/io, keyed by file extension.
var gridFormats = map[string]bool{
	"json": true,
	"yaml": true,
	"yml":  true,
	"toml": true,
}

// ValidateFormat validates a grid file format name ("json", "yaml", "toml").
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !gridFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported grid format: %q (valid: json, yaml, toml)", format)
	}
	return nil
}

// FormatFromPath returns the grid format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if err := ValidateFormat(ext); err != nil {
		return "", Wrap(ErrCodeInvalidFormat, err, "cannot infer format of %s", path)
	}
	if ext == "yml" {
		ext = "yaml"
	}
	return ext, nil
}

// maxBlueprintLength bounds blueprint strings accepted from users (8 MiB).
const maxBlueprintLength = 8 << 20

// ValidateBlueprintString performs cheap checks on a blueprint exchange
// string before it is decoded:
//   - Not empty
//   - At most 8 MiB
//   - Version byte '0'
//   - No whitespace or control characters inside the payload
func ValidateBlueprintString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return New(ErrCodeInvalidBlueprint, "blueprint string cannot be empty")
	}
	if len(s) > maxBlueprintLength {
		return New(ErrCodeInvalidBlueprint, "blueprint string too long (max %d bytes)", maxBlueprintLength)
	}
	if s[0] != '0' {
		return New(ErrCodeInvalidBlueprint, "unsupported blueprint version byte %q", s[0])
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidBlueprint, "blueprint string contains whitespace or control characters")
		}
	}
	return nil
}
