// Package app wires the buffer, configuration, logging and renderer into
// an interactive editor and runs its event loop.
package app

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/renderer/core"
)

// Application owns one buffer and everything needed to edit it.
type Application struct {
	opts Options

	config     *config.Config
	configPath string
	buf        *buffer.Buffer

	logger    *slog.Logger
	logCloser io.Closer
	session   string

	backend  backend.Backend
	renderer *renderer.Renderer
	watcher  *config.Watcher

	modified  bool
	quitArmed bool
	closed    bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty selects
	// config.DefaultPath.
	ConfigPath string

	// File is the file to edit. Empty starts an untitled buffer.
	File string

	// LogLevel overrides the configured logging level when set.
	LogLevel string

	// LogFile overrides the configured log file when set.
	LogFile string

	// ReadOnly rejects every edit.
	ReadOnly bool

	// Backend replaces the tcell terminal, e.g. with a NullBackend.
	Backend backend.Backend

	// DisableWatcher turns off config live reload.
	DisableWatcher bool
}

// New creates a new Application with the given options.
// Configuration problems are not fatal: the defaults are used and the
// problem is reported on the status line.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:       opts,
		configPath: opts.ConfigPath,
		session:    newSessionID(),
	}
	if app.configPath == "" {
		app.configPath = config.DefaultPath()
	}

	cfg, cfgErr := config.Load(app.configPath)
	if cfgErr != nil {
		cfg = config.Default()
	}
	app.config = cfg

	if err := app.initLogging(); err != nil {
		return nil, err
	}
	if cfgErr != nil {
		app.logger.Warn("config load failed, using defaults", "path", app.configPath, "error", cfgErr)
	}

	openErr := app.openBuffer()

	if err := app.initBackend(); err != nil {
		app.Close()
		return nil, err
	}
	app.renderer = renderer.New(app.backend, rendererOptions(cfg))
	if cfgErr != nil {
		app.renderer.SetMessage(NewOperationError("config", app.configPath, cfgErr).Error())
	}
	if openErr != nil {
		app.renderer.SetMessage(openErr.Error())
	}

	if !opts.DisableWatcher {
		app.startWatcher()
	}

	app.logger.Info("application started",
		"file", app.buf.Path(),
		"lines", app.buf.LineCount(),
		"readonly", opts.ReadOnly,
	)
	return app, nil
}

func (app *Application) initLogging() error {
	levelName := app.config.Logging.Level
	if app.opts.LogLevel != "" {
		levelName = app.opts.LogLevel
	}
	level, err := ParseLogLevel(levelName)
	if err != nil {
		return NewOperationError("configure logging", "", err)
	}

	path := app.config.Logging.File
	if app.opts.LogFile != "" {
		path = app.opts.LogFile
	}

	logger, closer, err := newLogger(path, level, app.session)
	if err != nil {
		return NewOperationError("open log", path, err)
	}
	app.logger = logger
	app.logCloser = closer
	return nil
}

// openBuffer loads opts.File. A file that does not exist yields an empty
// buffer that will be saved to that path. Any other failure, such as text
// that is not UTF-8, yields an untitled buffer so the file on disk is never
// overwritten; the returned error explains why.
func (app *Application) openBuffer() error {
	bufOpts := app.config.BufferOptions()
	if app.opts.File == "" {
		app.buf = buffer.New(bufOpts...)
		return nil
	}

	buf, err := buffer.OpenFile(app.opts.File, bufOpts...)
	switch {
	case err == nil:
		app.buf = buf
		return nil
	case errors.Is(err, fs.ErrNotExist):
		app.logger.Info("starting new file", "path", app.opts.File)
		app.buf = buffer.New(bufOpts...)
		app.buf.SetPath(app.opts.File)
		return nil
	default:
		app.logger.Warn("cannot open file", "path", app.opts.File, "error", err)
		app.buf = buffer.New(bufOpts...)
		return NewOperationError("open", "", err)
	}
}

func (app *Application) initBackend() error {
	if app.opts.Backend != nil {
		app.backend = app.opts.Backend
		return nil
	}
	term, err := backend.NewTerminal()
	if err != nil {
		return NewOperationError("open terminal", "", err)
	}
	app.backend = term
	return nil
}

// startWatcher reloads the configuration whenever its file changes. The
// watcher only posts an event; the reload itself runs on the event loop.
func (app *Application) startWatcher() {
	if _, err := os.Stat(filepath.Dir(app.configPath)); err != nil {
		app.logger.Debug("config directory missing, live reload disabled", "path", app.configPath)
		return
	}

	w, err := config.NewWatcher(app.configPath, func() {
		app.backend.PostEvent(backend.Event{Type: backend.EventReload})
	}, config.WithErrorHandler(func(err error) {
		app.logger.Warn("config watcher error", "error", err)
	}))
	if err != nil {
		app.logger.Warn("config watcher failed", "path", app.configPath, "error", err)
		return
	}
	app.watcher = w
}

// rendererOptions derives renderer options from the configuration.
// Colors have already been validated by config.Load.
func rendererOptions(cfg *config.Config) renderer.Options {
	opts := renderer.DefaultOptions()
	opts.ShowLineNumbers = cfg.UI.ShowLineNumbers
	opts.TabWidth = cfg.Editor.TabWidth

	fg, fgErr := core.ColorFromHex(cfg.UI.StatusForeground)
	bg, bgErr := core.ColorFromHex(cfg.UI.StatusBackground)
	if fgErr == nil && bgErr == nil {
		opts.StatusStyle = core.DefaultStyle().WithForeground(fg).WithBackground(bg)
		opts.GutterStyle = core.DefaultStyle().WithForeground(bg.Blend(fg, 0.4))
	}
	return opts
}

// Run draws the buffer and processes events until the user quits or ctx
// is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if err := app.backend.Init(); err != nil {
		return NewOperationError("init terminal", "", err)
	}
	defer app.backend.Shutdown()

	stop := context.AfterFunc(ctx, func() {
		app.backend.PostEvent(backend.Event{Type: backend.EventNone})
	})
	defer stop()

	for {
		app.renderer.Render(app.buf)

		ev := app.backend.PollEvent()
		if ctx.Err() != nil {
			app.logger.Info("context cancelled, exiting")
			return ctx.Err()
		}

		if err := app.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				app.logger.Info("quit")
				return nil
			}
			app.report(err)
		}
	}
}

// report logs err and shows it on the status line.
func (app *Application) report(err error) {
	app.logger.Warn("operation failed", "error", err)
	app.renderer.SetMessage(err.Error())
}

// Close stops the config watcher and closes the log. It is safe to call
// more than once.
func (app *Application) Close() error {
	if app.closed {
		return nil
	}
	app.closed = true

	var errs []error
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	if app.logCloser != nil {
		app.logger.Info("application stopped")
		errs = append(errs, app.logCloser.Close())
	}
	return errors.Join(errs...)
}

// Buffer returns the buffer being edited.
func (app *Application) Buffer() *buffer.Buffer {
	return app.buf
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Renderer returns the renderer.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Modified reports whether the buffer has unsaved edits.
func (app *Application) Modified() bool {
	return app.modified
}

// ReadOnly reports whether edits are rejected.
func (app *Application) ReadOnly() bool {
	return app.opts.ReadOnly
}

// Session returns the id attached to every log record of this run.
func (app *Application) Session() string {
	return app.session
}
