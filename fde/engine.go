// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fde

import (
	"errors"
	"fmt"

	"github.com/system76/firmware-setup/key"
	"github.com/system76/firmware-setup/ui"
)

// ErrNoResources is returned when the engine is used without display
// resources.
var ErrNoResources = errors.New("display resources not initialized")

// Events represents the display event source.
type Events interface {
	// Wait blocks until a key press is queued or, when not 0, the refresh
	// event is signaled.
	Wait(refresh uint64) (EventKind, error)
}

// Engine implements the Form Display Engine.
type Engine struct {
	UI      *ui.Ui
	Canvas  ui.Canvas
	Keys    key.Source
	Events  Events
	Strings Strings
}

// DisplayForm displays a form until the user finalizes a statement, exits
// the form, triggers a hot key or the form refresh event is signaled.
//
// Queued key presses are all applied, in order, before the next frame is
// drawn.
func (e *Engine) DisplayForm(form Form) (in UserInput, err error) {
	if e.UI == nil || e.Canvas == nil {
		return in, ErrNoResources
	}

	sc := &Screen{
		FrontPage: form.FormID() == FrontPageFormID,
	}

	sc.Elements, sc.State.Selected = Flatten(form, e.Strings)

	if e.Strings != nil {
		if title, err := e.Strings.String(form.Handle(), form.Title()); err == nil {
			sc.Title = title
			sc.HasTitle = true
		}
	}

	ctx := Context{
		FrontPage: sc.FrontPage,
		HotKeys:   form.HotKeys(),
	}

	for _, hk := range ctx.HotKeys {
		if hk != nil {
			sc.HotKeyHelp = append(sc.HotKeyHelp, hk.Help())
		}
	}

	for {
		ctx.Window = Render(e.UI, e.Canvas, sc)

		if err = e.Canvas.Display(); err != nil {
			return in, fmt.Errorf("display error, %v", err)
		}

		kind, err := e.Events.Wait(form.RefreshEvent())

		if err != nil {
			return in, err
		}

		if kind == Driver {
			_, t := Step(sc.State, sc.Elements, Event{Kind: Driver}, ctx)
			return *t, nil
		}

		for {
			k, err := e.Keys.ReadKey(false)

			if errors.Is(err, key.ErrNotReady) {
				break
			}

			if err != nil {
				return in, err
			}

			var t *UserInput

			if sc.State, t = Step(sc.State, sc.Elements, Press(k), ctx); t != nil {
				return *t, nil
			}
		}
	}
}

// ExitDisplay notifies the end of a form browser session.
func (e *Engine) ExitDisplay() {}

// ConfirmDataChange reports whether changes must be confirmed before being
// submitted, changes are never confirmed.
func (e *Engine) ConfirmDataChange() uint64 {
	return 0
}
