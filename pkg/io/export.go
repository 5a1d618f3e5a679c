package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/mediagrid/pkg/errors"
	"github.com/matzehuels/mediagrid/pkg/mediagrid"
)

// Layout is a computed grid over items read by this package.
type Layout = mediagrid.Result[Item]

// WriteLayout encodes a layout as indented JSON and writes it to w.
// A nil layout is written as the JSON literal null.
func WriteLayout(l *Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes a layout to a JSON file at path.
// This is a convenience wrapper around [WriteLayout] for file-based output.
func ExportLayout(l *Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadLayout decodes a layout previously written by [WriteLayout].
// It returns nil for the JSON literal null.
func ReadLayout(r io.Reader) (*Layout, error) {
	var l *Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode layout")
	}
	return l, nil
}

// ImportLayout reads a layout file written by [ExportLayout].
func ImportLayout(path string) (*Layout, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "layout file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
