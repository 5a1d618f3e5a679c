package mediagrid

import (
	"iter"
	"math"

	errs "github.com/matzehuels/mediagrid/pkg/errors"
)

// Default constraint values, tuned for a 1000px wide chat bubble.
const (
	DefaultMaxWidth  = 1000.0
	DefaultMaxHeight = 1777.0 // 9:16
	DefaultMinHeight = 563.0  // ~2:1
	DefaultGap       = 1.5
)

// Sized is implemented by anything that has a positive width and height.
// Only the ratio of the two matters.
type Sized interface {
	Size() (width, height float64)
}

// Dimensions is a plain width and height pair.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size implements [Sized].
func (d Dimensions) Size() (float64, float64) { return d.Width, d.Height }

// Ratio returns Width / Height.
func (d Dimensions) Ratio() float64 { return d.Width / d.Height }

// Constraints bound the generated canvas. All values are in pixels.
type Constraints struct {
	MaxWidth  float64 `json:"max_width" toml:"max_width"`
	MaxHeight float64 `json:"max_height" toml:"max_height"`
	MinHeight float64 `json:"min_height" toml:"min_height"`
	Gap       float64 `json:"gap" toml:"gap"`
}

// NewConstraints returns constraints with the given limits.
func NewConstraints(maxWidth, maxHeight, minHeight, gap float64) Constraints {
	return Constraints{
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
		MinHeight: minHeight,
		Gap:       gap,
	}
}

// Default returns the stock constraints: 1000 wide, 1777 high at most,
// 563 high at least and a 1.5px gap.
func Default() Constraints {
	return NewConstraints(DefaultMaxWidth, DefaultMaxHeight, DefaultMinHeight, DefaultGap)
}

// MaxRatio is the aspect ratio of the largest allowed canvas.
func (c Constraints) MaxRatio() float64 { return c.MaxWidth / c.MaxHeight }

// Validate reports an INVALID_CONSTRAINTS error if any limit is not a
// positive finite number.
func (c Constraints) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"max width", c.MaxWidth},
		{"max height", c.MaxHeight},
		{"min height", c.MinHeight},
		{"gap", c.Gap},
	}
	for _, f := range fields {
		if !isPositive(f.value) {
			return errs.New(errs.ErrCodeInvalidConstraints, "%s must be a positive number, got %v", f.name, f.value)
		}
	}
	return nil
}

// Generate lays out items within c.
//
// It returns (nil, nil) when there are fewer than two items: there is no
// layout to make, and callers must check for it. An error is returned only
// for unusable input, i.e. invalid constraints or an item whose width or
// height is not a positive finite number.
//
// The returned tiles are in the same order as items.
func Generate[T Sized](items []T, c Constraints) (*Result[T], error) {
	if len(items) < 2 {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sizes := make([]Dimensions, len(items))
	for i, item := range items {
		w, h := item.Size()
		if !isPositive(w) || !isPositive(h) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "item %d: size %vx%v is not positive", i, w, h)
		}
		sizes[i] = Dimensions{Width: w, Height: h}
	}

	t := classify(sizes)

	var s shape
	switch len(items) {
	case 2:
		s = layoutTwo(c, t)
	case 3:
		s = layoutThree(c, t)
	case 4:
		s = layoutFour(c, t)
	default:
		s = layoutMany(c, t)
	}
	return attach(s, items), nil
}

// GenerateSeq is [Generate] over an arbitrary sequence.
func GenerateSeq[T Sized](seq iter.Seq[T], c Constraints) (*Result[T], error) {
	var items []T
	for item := range seq {
		items = append(items, item)
	}
	return Generate(items, c)
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
