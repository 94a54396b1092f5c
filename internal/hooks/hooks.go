// Package hooks defines CoreHooks, the single capability/strategy
// injection point replacing a set of global function-pointer defaults:
// display_name, room_line, render_appearance, can_detect, make_connection,
// make_session, and the password hashing strategy. New fills every field
// except MakeConnection and MakeSession, which it leaves nil; content or
// tests may replace any subset of them.
package hooks

import (
	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/relation"
	"github.com/coremud/core/internal/store"
)

// CoreHooks groups every pluggable capability a running Core exposes.
// Fields are plain closures rather than an interface so callers can
// override one capability without implementing all of them.
type CoreHooks struct {
	// DisplayName renders e's bare name, used when no better-specific
	// rendering applies.
	DisplayName func(w *store.World, e store.Entity) string

	// RoomLine renders e as it appears listed in a container's contents.
	RoomLine func(w *store.World, e store.Entity) string

	// RenderAppearance renders e's full "look" text.
	RenderAppearance func(w *store.World, e store.Entity) string

	// CanDetect reports whether observer can perceive target at all,
	// gating both display and Search resolution.
	CanDetect func(w *store.World, observer, target store.Entity) bool

	// IsEquipped reports whether e counts as worn/wielded rather than
	// merely carried, used by Search's eq() container to separate
	// equipment from inventory. Left to content by default (always false),
	// since equipment slots are game-specific.
	IsEquipped func(w *store.World, e store.Entity) bool

	// HashPassword and VerifyPassword implement the account credential
	// KDF.
	HashPassword   func(password string) (string, error)
	VerifyPassword func(hash, password string) bool

	// StripColor removes the core's markup/color codes to produce Text's
	// Clean form from its Raw form.
	StripColor store.ColorStrip

	// MakeConnection constructs the connection-layer wrapper for a freshly
	// accepted client multiplexed over the edge link.
	// raw is whatever the edge package hands back per client id; the
	// concrete type is connection.Connection, type-asserted by callers
	// that already know it, kept as `any` here to avoid an import cycle
	// between hooks and connection.
	MakeConnection func(clientID int64, raw any) any

	// MakeSession constructs the session-layer wrapper binding an account
	// and puppet to a connection.
	MakeSession func(accountID int64, conn any) any
}

// New builds a CoreHooks with every field except MakeConnection and
// MakeSession (left nil) set to its documented default, wired to the display pipeline in package relation and reading the
// component stores Core registered for Name, ShortDescription, and
// LookDescription.
func New(
	names *store.ComponentStore[component.Name],
	shorts *store.ComponentStore[component.ShortDescription],
	looks *store.ComponentStore[component.LookDescription],
) *CoreHooks {
	h := &CoreHooks{
		StripColor:     defaultStripColor,
		HashPassword:   bcryptHash,
		VerifyPassword: bcryptVerify,
		CanDetect: func(_ *store.World, _, _ store.Entity) bool {
			return true
		},
		IsEquipped: func(_ *store.World, _ store.Entity) bool {
			return false
		},
	}
	h.DisplayName = func(w *store.World, e store.Entity) string {
		return relation.DefaultDisplayName(w, names, e)
	}
	h.RoomLine = func(w *store.World, e store.Entity) string {
		return relation.DefaultRoomLine(w, shorts, names, e)
	}
	h.RenderAppearance = func(w *store.World, e store.Entity) string {
		return relation.DefaultRenderAppearance(w, looks, names, e)
	}
	return h
}
