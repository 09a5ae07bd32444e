package plan

import (
	"slices"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/session"
)

// Snapshot captures the plan for saving.
func (p *Plan) Snapshot() *session.Session {
	return &session.Session{
		Class:    p.Class,
		Room:     p.Room,
		Layout:   p.layoutName,
		Custom:   p.registry.Custom(),
		Entities: p.board.Entities(),
	}
}

// FromSession rebuilds a plan from a loaded session. A saved Custom layout
// replaces reg's Custom entry; an unknown layout name falls back to the
// first layout of reg. Entities keep their saved seats where valid and the
// rest are auto-assigned.
//
// The plan is always usable. The returned warnings list the session's own
// load warnings plus any saved layout state that could not be restored, so
// callers can tell the user that seats may have moved.
func FromSession(reg *layout.Registry, s *session.Session) (*Plan, []error) {
	p := New(reg)
	p.Class, p.Room = s.Class, s.Room
	warnings := slices.Clone(s.Warnings)

	if s.Custom != nil {
		if err := p.registry.SetCustom(s.Custom); err != nil {
			warnings = append(warnings, errors.Wrap(errors.ErrCodeInvalidLayout, err, "saved custom layout ignored"))
		}
	}
	if err := p.SelectLayout(s.Layout); err != nil {
		fallback := p.registry.Names()[0]
		warnings = append(warnings, errors.Wrap(errors.ErrCodeNotFound, err, "layout %q replaced by %q", s.Layout, fallback))
		_ = p.SelectLayout(fallback)
	}
	p.Replace(s.Entities)
	return p, warnings
}
