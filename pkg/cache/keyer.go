package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from the items whose
	// sizes hash to itemsHash.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts holds the inputs besides the items that change a layout.
type LayoutKeyOpts struct {
	MaxWidth  float64 `json:"max_width"`
	MaxHeight float64 `json:"max_height"`
	MinHeight float64 `json:"min_height"`
	Gap       float64 `json:"gap"`
}

// DefaultKeyer produces keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the keyer used when none is configured.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

var _ Keyer = DefaultKeyer{}
