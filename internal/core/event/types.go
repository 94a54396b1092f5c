package event

import "github.com/coremud/core/internal/store"

// EntityCreated fires once a fresh entity has a slot and ObjectID, before
// any components are attached.
type EntityCreated struct {
	Entity store.Entity
	ID     store.ObjectID
}

// EntityDeleted fires after the deletion cascade has run but before the
// slot is returned to the free list.
type EntityDeleted struct {
	Entity store.Entity
	ID     store.ObjectID
}

// AccountAuthenticated fires when a Connection completes login, moving
// from WELCOMED to AUTHED.
type AccountAuthenticated struct {
	ConnectionID int64
	AccountID    int64
}

// SessionStarted fires when a Session gets its first Connection, either
// after creation or after it went link-dead.
type SessionStarted struct {
	AccountID int64
	Character store.Entity
}

// SessionLinkDead fires when a Session's last Connection detaches. The
// session becomes link-dead but is not destroyed immediately; a higher
// layer may reap it after a grace period.
type SessionLinkDead struct {
	AccountID int64
	Character store.Entity
}
