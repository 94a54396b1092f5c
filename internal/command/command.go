package command

import "github.com/coremud/core/internal/store"

// ConnectContext is handed to a ConnectCommand's Execute: pre-auth dispatch
// on a Connection with no Session attached. Connection
// is `any`, type-asserted by commands that need the concrete type, to
// avoid an import cycle between command and connection.
type ConnectContext struct {
	Connection any
	Parsed     Parsed
}

// ConnectCommand is a pre-auth command: connect, create, help, who, look,
// quit.
type ConnectCommand interface {
	Name() string
	Aliases() []string
	Priority() int
	Help() string
	Category() string
	Execute(ctx *ConnectContext) error
}

// LoginContext is handed to a LoginCommand's Execute: post-auth, pre-play
// dispatch.
type LoginContext struct {
	Connection any
	AccountID  int64
	Parsed     Parsed
}

// LoginCommand is a post-auth, pre-play command: play, new.
type LoginCommand interface {
	Name() string
	Aliases() []string
	Priority() int
	Help() string
	Category() string
	Execute(ctx *LoginContext) error
}

// ExecContext is handed to an in-world Command's CanExecute/Execute; it
// acts on an entity puppet. Session is `any` for the same reason as
// ConnectContext.Connection.
type ExecContext struct {
	World  *store.World
	Puppet store.Entity
	Parsed Parsed
	Session any
}

// Command is an in-world command: look, say, move, get, put, give, drop,
// inventory, equip, and so on.
type Command interface {
	Name() string
	Aliases() []string
	Priority() int
	Help() string
	Category() string

	// IsAvailable gates the command by an entity's shape key rather than
	// the live entity, since the sorted command cache is memoized per
	// shape, typically by inspecting role-flag presence.
	IsAvailable(shapeKey uint8) bool

	CanExecute(ctx *ExecContext) (bool, string)
	Execute(ctx *ExecContext) error
}
