// Package app wires the terminal client's dependencies: configuration,
// logging, the API client and, in demo mode, the in-process backend stub.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/propertyplus/propclient/internal/stub"
	"github.com/propertyplus/propclient/internal/stub/store"
	"github.com/propertyplus/propclient/pkg/propsdk"
	"github.com/propertyplus/propclient/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	stubShutdownGrace = 5 * time.Second
)

// App holds the initialized client and, when enabled, the running stub.
type App struct {
	cfg    Config
	Logger *slog.Logger
	Client *propsdk.Client

	stubStore  *store.Store
	stubServer *http.Server
}

// New creates an App with all dependencies initialized. With UseStub set
// it starts the in-process backend on a loopback port and points the
// client at it.
func New(cfg Config) (*App, error) {
	a := &App{
		cfg: cfg,
		Logger: slogx.New(slogx.Config{
			Service: "propctl",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	baseURL := cfg.BaseURL
	if cfg.UseStub {
		stubURL, err := a.startStub()
		if err != nil {
			return nil, fmt.Errorf("failed to start backend stub: %w", err)
		}
		baseURL = stubURL
		a.Logger.Info("running against in-process stub", "url", stubURL)
	}

	a.Client = propsdk.NewClient(baseURL)
	return a, nil
}

func (a *App) startStub() (string, error) {
	st, err := store.NewStore(a.cfg.StubDatabase)
	if err != nil {
		return "", err
	}
	srv, err := stub.New(st, a.Logger)
	if err != nil {
		_ = st.Close()
		return "", err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		_ = st.Close()
		return "", err
	}

	a.stubStore = st
	a.stubServer = &http.Server{Handler: srv, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.stubServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("stub server stopped", "error", err)
		}
	}()
	return "http://" + ln.Addr().String(), nil
}

// Close shuts the stub down, if one is running.
func (a *App) Close() error {
	if a.stubServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), stubShutdownGrace)
		defer cancel()
		if err := a.stubServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	if a.stubStore != nil {
		return a.stubStore.Close()
	}
	return nil
}
