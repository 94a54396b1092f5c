package component

// SessionMode tags what a SessionHolder's attached session currently
// represents for the puppet entity it is stored against.
type SessionMode uint8

const (
	// SessionModeNone means the entity has no live controller attached.
	SessionModeNone SessionMode = iota
	// SessionModePlayer means a connected player session is puppeting
	// this entity.
	SessionModePlayer
	// SessionModeObserver means a session is watching without control,
	// e.g. during character select or an admin snoop.
	SessionModeObserver
)

// SessionHolder is a runtime-only component (never persisted) linking an
// entity to the live session controlling it. Session
// is stored as `any` here to avoid an import cycle between component and
// session; the session package asserts it back to its concrete type.
type SessionHolder struct {
	Session any
	Mode    SessionMode
}
