// Copyright (c) WithSecure Corporation
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package shell

import (
	"regexp"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

// CmdFn represents a command handler.
type CmdFn func(iface *Interface, arg []string) (res string, err error)

// Cmd represents a shell command.
type Cmd struct {
	// Name is the command name, matched exactly when Pattern is nil.
	Name string
	// Args is the number of Pattern submatches passed to Fn.
	Args    int
	Pattern *regexp.Regexp
	Syntax  string
	Help    string
	Fn      CmdFn
}

var cmds = make(map[string]*Cmd)

// Add registers a terminal command, replacing any previous one with the
// same name.
func Add(cmd Cmd) {
	cmds[cmd.Name] = &cmd
}

// Help returns the list of registered commands.
func (iface *Interface) Help(_ []string) (string, error) {
	var names []string

	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false

	for _, name := range names {
		cmd := cmds[name]
		t.AppendRow(table.Row{cmd.Name, cmd.Syntax, "# " + cmd.Help})
	}

	return t.Render(), nil
}
