package layout

import (
	"encoding/json"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// Envelope is the serialized form of a [Config].
type Envelope struct {
	Regular     bool        `json:"regular"`
	Rows        int         `json:"rows,omitempty"`
	Banks       int         `json:"banks,omitempty"`
	Seats       int         `json:"seats,omitempty"`
	Pattern     [][]int     `json:"pattern,omitempty"`
	Orientation Orientation `json:"orientation"`

	// CenterFirstRow is written for irregular layouts; every row is
	// centered regardless, so it is ignored on decode.
	CenterFirstRow bool `json:"center_first_row,omitempty"`
}

// ToEnvelope converts cfg to its serialized form.
func ToEnvelope(cfg Config) Envelope {
	switch c := cfg.(type) {
	case Regular:
		return Envelope{Regular: true, Rows: c.Rows, Banks: c.Banks, Seats: c.Seats, Orientation: c.Orientation()}
	case Irregular:
		return Envelope{Pattern: c.Clone().Pattern, Orientation: c.Orientation(), CenterFirstRow: true}
	}
	return Envelope{}
}

// Config converts the envelope back into a layout and validates it.
func (e Envelope) Config() (Config, error) {
	orient, err := ParseOrientation(string(e.Orientation))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode layout")
	}
	var cfg Config
	if e.Regular {
		cfg = Regular{Rows: e.Rows, Banks: e.Banks, Seats: e.Seats, Orient: orient}
	} else {
		cfg = Irregular{Pattern: e.Pattern, Orient: orient}
	}
	if _, err := Resolve(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes cfg as JSON.
func Marshal(cfg Config) ([]byte, error) {
	return json.Marshal(ToEnvelope(cfg))
}

// Unmarshal decodes and validates a JSON layout.
func Unmarshal(data []byte) (Config, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return e.Config()
}
