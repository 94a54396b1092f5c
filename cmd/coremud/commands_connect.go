package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/coremud/core/internal/command"
	"github.com/coremud/core/internal/connection"
	"github.com/coremud/core/internal/core/event"
	"github.com/coremud/core/internal/hooks"
	"github.com/coremud/core/internal/persist"
)

// The pre-auth commands below (and the post-auth ones in commands_login.go)
// live here rather than in package command, which ships only the
// registries and the dispatch mechanics. They are the minimal
// account-lifecycle commands that take a connection from WELCOMED to
// IN_SESSION, kept in the composition root alongside the rest of the wiring.

type connectCommand struct {
	accounts *persist.AccountRepo
	hooks    *hooks.CoreHooks
	now      func() int64
	events   *event.Bus
}

func (c *connectCommand) Name() string        { return "connect" }
func (c *connectCommand) Aliases() []string   { return nil }
func (c *connectCommand) Priority() int       { return 0 }
func (c *connectCommand) Help() string        { return "connect <username> <password>" }
func (c *connectCommand) Category() string    { return "auth" }

func (c *connectCommand) Execute(ctx *command.ConnectContext) error {
	conn, ok := ctx.Connection.(*connection.Connection)
	if !ok {
		return fmt.Errorf("connect: context carried no connection")
	}
	fields := strings.Fields(ctx.Parsed.LSArgs)
	if len(fields) != 2 {
		conn.SendOutput("Usage: connect <username> <password>\n")
		return nil
	}
	username, password := fields[0], fields[1]

	row, err := c.accounts.LoadByUsername(context.Background(), username)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if row == nil || !c.hooks.VerifyPassword(row.PasswordHash, password) {
		conn.SendOutput("Invalid username or password.\n")
		return nil
	}

	conn.AccountID = row.ID
	conn.AdminLevel = row.AdminLevel
	conn.State = connection.StateAuthed
	if err := c.accounts.UpdateLastLogin(context.Background(), row.ID, c.now()); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if c.events != nil {
		event.Emit(c.events, event.AccountAuthenticated{ConnectionID: conn.ID, AccountID: row.ID})
	}
	conn.SendOutput(fmt.Sprintf("Welcome back, %s.\n", row.Username))
	return nil
}

type createCommand struct {
	accounts *persist.AccountRepo
	hooks    *hooks.CoreHooks
	now      func() int64
	events   *event.Bus
}

func (c *createCommand) Name() string        { return "create" }
func (c *createCommand) Aliases() []string   { return nil }
func (c *createCommand) Priority() int       { return 0 }
func (c *createCommand) Help() string        { return "create <username> <password>" }
func (c *createCommand) Category() string    { return "auth" }

func (c *createCommand) Execute(ctx *command.ConnectContext) error {
	conn, ok := ctx.Connection.(*connection.Connection)
	if !ok {
		return fmt.Errorf("create: context carried no connection")
	}
	fields := strings.Fields(ctx.Parsed.LSArgs)
	if len(fields) != 2 {
		conn.SendOutput("Usage: create <username> <password>\n")
		return nil
	}
	username, password := fields[0], fields[1]

	existing, err := c.accounts.LoadByUsername(context.Background(), username)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if existing != nil {
		conn.SendOutput("That username is taken.\n")
		return nil
	}

	hash, err := c.hooks.HashPassword(password)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	row, err := c.accounts.Create(context.Background(), username, hash, c.now())
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	conn.AccountID = row.ID
	conn.State = connection.StateAuthed
	if c.events != nil {
		event.Emit(c.events, event.AccountAuthenticated{ConnectionID: conn.ID, AccountID: row.ID})
	}
	conn.SendOutput(fmt.Sprintf("Account %s created. Use 'new <name>' to create a character.\n", row.Username))
	return nil
}

type quitConnectCommand struct{}

func (quitConnectCommand) Name() string      { return "quit" }
func (quitConnectCommand) Aliases() []string { return nil }
func (quitConnectCommand) Priority() int     { return 0 }
func (quitConnectCommand) Help() string      { return "quit" }
func (quitConnectCommand) Category() string  { return "auth" }

func (quitConnectCommand) Execute(ctx *command.ConnectContext) error {
	conn, ok := ctx.Connection.(*connection.Connection)
	if !ok {
		return fmt.Errorf("quit: context carried no connection")
	}
	conn.SendOutput("Goodbye.\n")
	return nil
}

type helpConnectCommand struct{}

func (helpConnectCommand) Name() string      { return "help" }
func (helpConnectCommand) Aliases() []string { return nil }
func (helpConnectCommand) Priority() int     { return 0 }
func (helpConnectCommand) Help() string      { return "help" }
func (helpConnectCommand) Category() string  { return "auth" }

func (c helpConnectCommand) Execute(ctx *command.ConnectContext) error {
	conn, ok := ctx.Connection.(*connection.Connection)
	if !ok {
		return fmt.Errorf("help: context carried no connection")
	}
	conn.SendOutput("Available: connect <user> <pass>, create <user> <pass>, quit, help\n")
	return nil
}
