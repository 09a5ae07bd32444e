package cache

// CropKeyOpts identifies one crop of a rasterized source page.
type CropKeyOpts struct {
	DPI   int    `json:"dpi"`
	Index int    `json:"index"`
	Grid  string `json:"grid"` // grid parameters, e.g. Grid.String()
}

// Keyer builds cache keys.
type Keyer interface {
	// CropKey is the key of a square thumbnail cut from a source page.
	CropKey(sourceHash string, opts CropKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) CropKey(sourceHash string, opts CropKeyOpts) string {
	return hashKey("crop", sourceHash, opts)
}

// ScopedKeyer prefixes every key, e.g. with a cache format version so an
// incompatible release never reads old entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) CropKey(sourceHash string, opts CropKeyOpts) string {
	return k.prefix + k.inner.CropKey(sourceHash, opts)
}
