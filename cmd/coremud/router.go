package main

import (
	"github.com/coremud/core/internal/command"
	"github.com/coremud/core/internal/connection"
)

// dispatchRouter implements connection.Router by parsing the raw line and
// looking it up in the flat pre-auth/post-auth command tables.
type dispatchRouter struct {
	connect *command.ConnectRegistry
	login   *command.LoginRegistry
}

func (r *dispatchRouter) DispatchConnect(conn *connection.Connection, line string) error {
	parsed, ok := command.Parse(line)
	if !ok || parsed.Cmd == "" {
		conn.SendOutput("Huh?\n")
		return nil
	}
	cmd, ok := r.connect.Lookup(parsed.Cmd)
	if !ok {
		conn.SendOutput("Huh?\n")
		return nil
	}
	return cmd.Execute(&command.ConnectContext{Connection: conn, Parsed: parsed})
}

func (r *dispatchRouter) DispatchLogin(conn *connection.Connection, line string) error {
	parsed, ok := command.Parse(line)
	if !ok || parsed.Cmd == "" {
		conn.SendOutput("Huh?\n")
		return nil
	}
	cmd, ok := r.login.Lookup(parsed.Cmd)
	if !ok {
		conn.SendOutput("Huh?\n")
		return nil
	}
	return cmd.Execute(&command.LoginContext{Connection: conn, AccountID: conn.AccountID, Parsed: parsed})
}
