package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/backend"
)

// handleEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventReload:
		return app.reloadConfig()
	case backend.EventResize:
		// The next frame picks up the new size.
		app.logger.Debug("resize", "width", ev.Width, "height", ev.Height)
		return nil
	default:
		return nil
	}
}

// handleKey runs the command bound to a key.
func (app *Application) handleKey(ev backend.Event) error {
	app.renderer.SetMessage("")
	if ev.Key != backend.KeyCtrlQ && ev.Key != backend.KeyCtrlC {
		app.quitArmed = false
	}

	switch ev.Key {
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModAlt) || ev.Mod.Has(backend.ModCtrl) {
			return NewOperationError("key", keyName(ev), ErrUnboundKey)
		}
		return app.edit("insert", func(b *buffer.Buffer) error { return b.InsertChar(ev.Rune) })
	case backend.KeyEnter:
		return app.edit("insert", func(b *buffer.Buffer) error { return b.InsertChar('\n') })
	case backend.KeyTab:
		return app.edit("insert", func(b *buffer.Buffer) error { return b.InsertChar('\t') })
	case backend.KeyBackspace:
		return app.edit("delete", func(b *buffer.Buffer) error { return b.DeleteChar(buffer.Left) })
	case backend.KeyDelete:
		return app.edit("delete", func(b *buffer.Buffer) error { return b.DeleteChar(buffer.Right) })

	case backend.KeyLeft:
		app.buf.ShiftCursor(buffer.Left)
	case backend.KeyRight:
		app.buf.ShiftCursor(buffer.Right)
	case backend.KeyUp:
		app.buf.ShiftCursor(buffer.Up)
	case backend.KeyDown:
		app.buf.ShiftCursor(buffer.Down)
	case backend.KeyPageUp:
		app.shiftPage(buffer.Up)
	case backend.KeyPageDown:
		app.shiftPage(buffer.Down)
	case backend.KeyHome:
		app.buf.MoveToLineStart()
	case backend.KeyEnd:
		app.buf.MoveToLineEnd()

	case backend.KeyCtrlS:
		return app.save()
	case backend.KeyCtrlQ, backend.KeyCtrlC:
		return app.quit()
	case backend.KeyEscape:
		// Clears the message, which already happened above.

	default:
		return NewOperationError("key", keyName(ev), ErrUnboundKey)
	}
	return nil
}

// edit applies fn to the buffer unless the application is read-only.
func (app *Application) edit(op string, fn func(*buffer.Buffer) error) error {
	if app.opts.ReadOnly {
		return NewOperationError(op, app.buf.Path(), ErrReadOnly)
	}
	length, cursor := app.buf.Len(), app.buf.Cursor()
	if err := fn(app.buf); err != nil {
		return NewOperationError(op, "", err)
	}
	if app.buf.Len() != length || app.buf.Cursor() != cursor {
		app.modified = true
	}

	if app.logger.Enabled(context.Background(), slog.LevelDebug) {
		if err := app.buf.Validate(); err != nil {
			app.logger.Error("buffer invariant violated", "op", op, "error", err)
			return NewOperationError(op, "", err)
		}
	}
	return nil
}

// shiftPage moves the cursor one screen of text rows up or down.
func (app *Application) shiftPage(dir buffer.Direction) {
	_, height := app.backend.Size()
	for range max(height-1, 1) {
		app.buf.ShiftCursor(dir)
	}
}

func (app *Application) save() error {
	path := app.buf.Path()
	if err := app.buf.Save(); err != nil {
		return NewOperationError("save", path, err)
	}
	app.modified = false
	app.logger.Info("saved", "path", path, "bytes", app.buf.ByteSize())
	app.renderer.SetMessage("saved " + path)
	return nil
}

// quit returns ErrQuit, except that with unsaved edits the first request
// only warns and a second one in a row is needed.
func (app *Application) quit() error {
	if app.modified && !app.opts.ReadOnly && !app.quitArmed {
		app.quitArmed = true
		app.renderer.SetMessage("unsaved changes: press Ctrl-Q again to quit")
		return nil
	}
	return ErrQuit
}

// reloadConfig re-reads the config file and applies the settings that can
// change at runtime.
func (app *Application) reloadConfig() error {
	cfg, err := config.Load(app.configPath)
	if err != nil {
		return NewOperationError("reload config", app.configPath, err)
	}
	app.config = cfg
	app.renderer.SetOptions(rendererOptions(cfg))
	app.logger.Info("config reloaded", "path", app.configPath, "settings", cfg.String())
	app.renderer.SetMessage("config reloaded")
	return nil
}

func keyName(ev backend.Event) string {
	if ev.Key == backend.KeyRune {
		return fmt.Sprintf("%q", ev.Rune)
	}
	return fmt.Sprintf("key(%d)", ev.Key)
}
