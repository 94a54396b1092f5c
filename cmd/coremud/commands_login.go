package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/coremud/core/internal/command"
	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/connection"
	"github.com/coremud/core/internal/persist"
	"github.com/coremud/core/internal/session"
	"github.com/coremud/core/internal/store"
)

// matchCharacterName resolves a play target name against the account's
// characters: an exact case-insensitive match always wins; failing that, a
// unique case-insensitive prefix match wins; anything else is ambiguous.
func matchCharacterName(names map[store.Entity]string, query string) (store.Entity, bool) {
	lower := strings.ToLower(query)
	var prefixMatches []store.Entity
	for e, name := range names {
		ln := strings.ToLower(name)
		if ln == lower {
			return e, true
		}
		if strings.HasPrefix(ln, lower) {
			prefixMatches = append(prefixMatches, e)
		}
	}
	if len(prefixMatches) == 1 {
		return prefixMatches[0], true
	}
	return store.Nil, false
}

type playCommand struct {
	characters *persist.CharacterRepo
	world      *store.World
	names      *store.ComponentStore[component.Name]
	sessions   *session.Manager
	now        func() int64
}

func (c *playCommand) Name() string      { return "play" }
func (c *playCommand) Aliases() []string { return nil }
func (c *playCommand) Priority() int     { return 0 }
func (c *playCommand) Help() string      { return "play <character name>" }
func (c *playCommand) Category() string  { return "auth" }

func (c *playCommand) Execute(ctx *command.LoginContext) error {
	conn, ok := ctx.Connection.(*connection.Connection)
	if !ok {
		return fmt.Errorf("play: context carried no connection")
	}

	rows, err := c.characters.ListByAccount(context.Background(), ctx.AccountID)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	if len(rows) == 0 {
		conn.SendOutput("You have no characters. Use 'new <name>' to create one.\n")
		return nil
	}

	named := make(map[store.Entity]string, len(rows))
	byRow := make(map[store.Entity]persist.CharacterRow, len(rows))
	for _, row := range rows {
		e, ok := c.world.Pool.Occupant(uint32(row.CharacterID))
		if !ok {
			continue
		}
		byRow[e] = row
		if n, ok := c.names.Get(e); ok {
			named[e] = n.Raw
		}
	}

	query := strings.TrimSpace(ctx.Parsed.LSArgs)
	var character store.Entity
	switch {
	case query == "" && len(named) == 1:
		for e := range named {
			character = e
		}
	case query == "":
		conn.SendOutput("Which character? Use 'play <name>'.\n")
		return nil
	default:
		e, matched := matchCharacterName(named, query)
		if !matched {
			conn.SendOutput("No matching character.\n")
			return nil
		}
		character = e
	}

	row := byRow[character]
	if existing, ok := c.sessions.Get(character); ok {
		existing.AddConnection(conn)
		conn.Session = existing
	} else {
		sess := c.sessions.Start(ctx.AccountID, character)
		sess.AddConnection(conn)
		conn.Session = sess
	}
	conn.State = connection.StateInSession

	if err := c.characters.UpdateLastLogin(context.Background(), row.CharacterID, c.now()); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	conn.SendOutput("You take control of your character.\n")
	return nil
}

type newCommand struct {
	characters *persist.CharacterRepo
	world      *store.World
	names      *store.ComponentStore[component.Name]
	shapes     *store.ComponentStore[component.Character]
	players    *store.ComponentStore[component.Player]
	now        func() int64
}

func (c *newCommand) Name() string      { return "new" }
func (c *newCommand) Aliases() []string { return nil }
func (c *newCommand) Priority() int     { return 0 }
func (c *newCommand) Help() string      { return "new <character name>" }
func (c *newCommand) Category() string  { return "auth" }

func (c *newCommand) Execute(ctx *command.LoginContext) error {
	conn, ok := ctx.Connection.(*connection.Connection)
	if !ok {
		return fmt.Errorf("new: context carried no connection")
	}
	name := strings.TrimSpace(ctx.Parsed.LSArgs)
	if name == "" {
		conn.SendOutput("Usage: new <character name>\n")
		return nil
	}

	e, id := c.world.CreateEntity()
	c.names.Set(e, &component.Name{Text: store.NewText(c.world.Interner, c.world.Strip, name)})
	c.shapes.Set(e, &component.Character{ShapeFlags: component.ShapeCharacter | component.ShapePlayer})
	c.players.Set(e, &component.Player{AccountID: ctx.AccountID})

	if err := c.characters.Create(context.Background(), int64(id.Index), ctx.AccountID); err != nil {
		return fmt.Errorf("new: %w", err)
	}
	conn.SendOutput(fmt.Sprintf("%s created. Use 'play %s' to enter the world.\n", name, name))
	return nil
}
