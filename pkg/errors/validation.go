package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// presetNameRegex matches preset names: lowercase words joined by dashes or
// underscores.
var presetNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidatePresetName validates the name of a constraints preset.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPreset, "preset name too long (max 64 characters)")
	}
	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPreset, "invalid preset name: %q", name)
	}
	return nil
}

// validFormats lists the output formats of the layout commands.
var validFormats = map[string]bool{"json": true, "table": true}

// ValidateFormat checks that an output format is supported.
func ValidateFormat(format string) error {
	if !validFormats[format] {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be 'json' or 'table')", format)
	}
	return nil
}

// ValidateCacheBackend checks the name of a cache backend.
func ValidateCacheBackend(backend string) error {
	switch backend {
	case "file", "none", "redis", "mongo":
		return nil
	}
	return New(ErrCodeInvalidConfig, "invalid cache backend: %q (must be file, none, redis or mongo)", backend)
}

// ValidatePath validates a local file path given on the command line or in
// the configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateMongoURI validates a MongoDB connection string.
// It ensures the URI uses the mongodb or mongodb+srv scheme.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidConfig, "mongo URI cannot be empty")
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidConfig, "mongo URI must use the mongodb or mongodb+srv scheme")
	}
	return nil
}
