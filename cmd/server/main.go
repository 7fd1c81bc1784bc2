package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-module-portal/internal/config"
	"github.com/jrsteele09/go-module-portal/internal/logging"
	"github.com/jrsteele09/go-module-portal/internal/storage"
	"github.com/jrsteele09/go-module-portal/server"
	"github.com/jrsteele09/go-module-portal/server/loginsession"
	"github.com/jrsteele09/go-module-portal/users/sqlrepo"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load(config.ConfigFilePath())
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	closeLog := logging.Setup(logging.Settings{Level: c.GetLogLevel(), File: c.GetLogFile(), Env: c.GetEnv()})
	defer closeLog()
	displayAppname(c.GetAppName())

	db, err := storage.Open(context.Background(), c.GetDatabaseDriver(), c.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("storage.Open: %w", err)
	}
	defer db.Close()

	loginSessions, closeSessions, err := openLoginSessions(c.GetSessionStorePath())
	if err != nil {
		return err
	}
	defer closeSessions()

	handler, err := server.New(c, sqlrepo.New(db), loginSessions)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

// openLoginSessions picks the bbolt store when a path is configured and the
// in-memory store otherwise.
func openLoginSessions(path string) (loginsession.Repo, func(), error) {
	if path == "" {
		return loginsession.NewInMemoryLoginSessionRepo(), func() {}, nil
	}
	repo, err := loginsession.OpenBoltLoginSessionRepo(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loginsession.OpenBoltLoginSessionRepo: %w", err)
	}
	log.Info().Str("path", path).Msg("Using persistent session store")
	return repo, func() { _ = repo.Close() }, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
