package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	errs "github.com/matzehuels/mediagrid/pkg/errors"
)

// Item is one media element of a group as read from JSON.
type Item struct {
	ID     string         `json:"id"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// Size reports the intrinsic pixel size of the item.
func (it Item) Size() (width, height float64) { return it.Width, it.Height }

// itemList is the object form of an items document.
type itemList struct {
	Items []Item `json:"items"`
}

// ReadItems decodes a list of items from r.
//
// Two shapes are accepted, a bare array and an object with an "items" array:
//
//	[{"id": "a", "width": 1600, "height": 900}, ...]
//	{"items": [{"id": "a", "width": 1600, "height": 900}, ...]}
//
// Items without an id get their zero-based position as id. Duplicate ids are
// rejected. Sizes are not checked here; the layout engine reports items with
// unusable sizes.
//
// ReadItems does not close r.
func ReadItems(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var items []Item
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "empty items document")
	case trimmed[0] == '[':
		err = json.Unmarshal(trimmed, &items)
	default:
		var list itemList
		err = json.Unmarshal(trimmed, &list)
		items = list.Items
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode items")
	}

	seen := make(map[string]int, len(items))
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = strconv.Itoa(i)
		}
		if j, dup := seen[items[i].ID]; dup {
			return nil, errs.New(errs.ErrCodeInvalidInput, "items %d and %d share id %q", j, i, items[i].ID)
		}
		seen[items[i].ID] = i
	}
	return items, nil
}

// ImportItems reads the items file at path using [ReadItems].
// A missing file yields an error with code FILE_NOT_FOUND.
func ImportItems(path string) ([]Item, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "items file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	items, err := ReadItems(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
