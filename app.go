// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gfx/backend"
)

// applicationCreated guards the single-application invariant. It is set
// when the first Application is constructed and intentionally never
// cleared: the backends behind an application hold process-global state
// (GLFW, GL function pointers), so a second application in the same
// process is refused even after the first one closes.
var applicationCreated atomic.Bool

// Option configures an Application during creation.
type Option func(*appOptions)

type appOptions struct {
	mainWindow WindowConfig
	backend    string
	logger     *slog.Logger
}

func defaultAppOptions() appOptions {
	return appOptions{mainWindow: NewWindowConfig()}
}

// WithTitle sets the main window title.
func WithTitle(title string) Option {
	return func(o *appOptions) { o.mainWindow.Title = title }
}

// WithSize sets the main window dimensions.
func WithSize(width, height int) Option {
	return func(o *appOptions) {
		o.mainWindow.Width, o.mainWindow.Height = width, height
	}
}

// WithMainWindow replaces the whole main window configuration.
func WithMainWindow(cfg WindowConfig) Option {
	return func(o *appOptions) { o.mainWindow = cfg }
}

// WithBackend selects a backend by registered name instead of the best
// available one.
func WithBackend(name string) Option {
	return func(o *appOptions) { o.backend = name }
}

// WithLogger enables logging through l. Equivalent to calling SetLogger
// before New.
func WithLogger(l *slog.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// Application owns a backend and the resources created on it, and drives
// the main loop. Only one Application may be created per process; further
// calls to New return ErrApplicationExists. An application always starts
// with a main window.
type Application struct {
	b         backend.Backend
	resources *Resources
	running   bool

	// OnStartup runs once before the first loop iteration. A non-nil
	// error aborts Run before any window updates.
	OnStartup func(ctx *Context) error
	// OnShutdown runs once after the last loop iteration.
	OnShutdown func(ctx *Context)
}

// New creates the application: claims the process slot, initializes the
// backend, and opens the main window under the registry name of its title.
func New(opts ...Option) (*Application, error) {
	if !applicationCreated.CompareAndSwap(false, true) {
		return nil, ErrApplicationExists
	}

	o := defaultAppOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}

	var (
		b   backend.Backend
		err error
	)
	if o.backend != "" {
		b, err = backend.Get(o.backend)
	} else {
		b, err = backend.Default()
	}
	if err != nil {
		return nil, &BackendInitError{Backend: o.backend, Err: err}
	}
	if err := b.Init(); err != nil {
		return nil, &BackendInitError{Backend: b.Name(), Err: err}
	}
	Logger().Info("backend initialized", slog.String("backend", b.Name()))

	app := &Application{
		b:         b,
		resources: NewResources(),
		running:   true,
	}
	if _, _, err := app.NewWindow(o.mainWindow, o.mainWindow.Title); err != nil {
		b.Terminate()
		return nil, err
	}
	return app, nil
}

// Backend returns the active backend.
func (a *Application) Backend() backend.Backend { return a.b }

// Resources returns the application's registries.
func (a *Application) Resources() *Resources { return a.resources }

// Context returns a resource-construction context for this application.
func (a *Application) Context() *Context {
	return &Context{Backend: a.b, Resources: a.resources, Log: Logger()}
}

// Running reports whether the last Run iteration had a live window.
func (a *Application) Running() bool { return a.running }

// NewWindow opens a window and records it under hint (or a generated name
// when hint is empty or taken). Returns the window and its registry name.
func (a *Application) NewWindow(cfg WindowConfig, hint string) (*Window, string, error) {
	w, err := newWindow(a.b, cfg)
	if err != nil {
		return nil, "", err
	}
	name := a.resources.Windows.Record(hint, w)
	return w, name, nil
}

// CurrentWindow returns the most recently created or accessed window.
func (a *Application) CurrentWindow() (*Window, error) {
	return a.resources.Windows.Recent()
}

// Run drives the main loop: every iteration updates each window once and
// removes the ones that stopped running; the loop ends when none survive.
// OnStartup runs before the first iteration, OnShutdown after the last.
func (a *Application) Run() error {
	if a.OnStartup != nil {
		if err := a.OnStartup(a.Context()); err != nil {
			return err
		}
	}

	windows := a.resources.Windows
	for {
		a.running = false
		var dead []string

		for _, name := range windows.Names() {
			w, err := windows.Get(name)
			if err != nil {
				continue // removed during this pass
			}
			if w.Update() {
				a.running = true
			} else {
				dead = append(dead, name)
			}
		}

		for _, name := range dead {
			Logger().Debug("window closed", slog.String("name", name))
			windows.Remove(name)
		}
		if !a.running {
			break
		}
	}

	if a.OnShutdown != nil {
		a.OnShutdown(a.Context())
	}
	return nil
}

// Close destroys all resources and terminates the backend. The process
// slot stays claimed; a process gets one application.
func (a *Application) Close() {
	a.resources.Destroy()
	a.b.Terminate()
}
