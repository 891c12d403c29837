// Copyright (c) WithSecure Corporation
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package cmd implements the debug shell commands of the setup application.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"runtime/debug"
	"runtime/pprof"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/system76/firmware-setup/fde"
	"github.com/system76/firmware-setup/fde/memform"
	"github.com/system76/firmware-setup/ifr"
	"github.com/system76/firmware-setup/shell"
)

func init() {
	shell.Add(shell.Cmd{
		Name: "help",
		Help: "this help",
		Fn:   helpCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "exit, quit",
		Args:    1,
		Pattern: regexp.MustCompile(`^(exit|quit)$`),
		Help:    "close session",
		Fn:      exitCmd,
	})

	shell.Add(shell.Cmd{
		Name: "build",
		Help: "build information",
		Fn:   buildInfoCmd,
	})

	shell.Add(shell.Cmd{
		Name: "stack",
		Help: "goroutine stack trace (current)",
		Fn:   stackCmd,
	})

	shell.Add(shell.Cmd{
		Name: "stackall",
		Help: "goroutine stack trace (all)",
		Fn:   stackallCmd,
	})

	shell.Add(shell.Cmd{
		Name: "elements",
		Help: "demo form elements",
		Fn:   elementsCmd,
	})
}

func helpCmd(iface *shell.Interface, _ []string) (string, error) {
	return iface.Help(nil)
}

func exitCmd(_ *shell.Interface, _ []string) (string, error) {
	return "", io.EOF
}

func buildInfoCmd(_ *shell.Interface, _ []string) (string, error) {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi.String(), nil
	}

	return "", nil
}

func stackCmd(_ *shell.Interface, _ []string) (string, error) {
	return string(debug.Stack()), nil
}

func stackallCmd(_ *shell.Interface, _ []string) (string, error) {
	buf := new(bytes.Buffer)
	pprof.Lookup("goroutine").WriteTo(buf, 1)

	return buf.String(), nil
}

func elementsCmd(_ *shell.Interface, _ []string) (string, error) {
	form, s := memform.Demo()
	elements, selected := fde.Flatten(form, s)

	return ElementsTable(elements, selected), nil
}

func elementValue(e *fde.Element) string {
	switch {
	case !e.Selectable:
		return ""
	case e.List:
		var s []string

		for _, o := range e.Options {
			s = append(s, o.Prompt)
		}

		return strings.Join(s, ", ")
	case len(e.Options) > 0:
		if i, ok := e.Choice(); ok {
			return e.Options[i].Prompt
		}

		return "?"
	case e.OpCode == ifr.OpNumeric || e.OpCode == ifr.OpCheckbox:
		return e.Value.String()
	default:
		return ""
	}
}

func elementFlags(e *fde.Element, selected bool) string {
	var flags []byte

	for _, f := range []struct {
		set  bool
		flag byte
	}{
		{selected, '*'},
		{e.Selectable, 'S'},
		{e.Editable, 'E'},
		{e.List, 'L'},
	} {
		if f.set {
			flags = append(flags, f.flag)
		} else {
			flags = append(flags, '-')
		}
	}

	return string(flags)
}

// ElementsTable renders flattened form elements, the selected element is
// flagged with '*'.
func ElementsTable(elements []fde.Element, selected int) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "OpCode", "Prompt", "Value", "Flags"})

	for i := range elements {
		e := &elements[i]
		t.AppendRow(table.Row{i, e.OpCode, e.Prompt, elementValue(e), elementFlags(e, i == selected)})
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d elements", len(elements))})

	return t.Render()
}
