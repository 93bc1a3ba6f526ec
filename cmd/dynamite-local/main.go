package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/truora/dynamite"
	"github.com/truora/dynamite/server"
)

const shutdownTimeout = 5 * time.Second

// injectable for tests
var serve = func(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)

	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	addr      string
	tables    string
	logLevel  string
	logFormat string
}

func parseFlags(args []string, out io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("dynamite-local", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.addr, "addr", "127.0.0.1:8000", "listen address")
	fs.StringVar(&opts.tables, "tables", "", "YAML file with the tables to create on start")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level")
	fs.StringVar(&opts.logFormat, "log-format", "console", "log format (json or console)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	return opts, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args, out)
	if err != nil {
		return err
	}

	logger := dynamite.NewLoggerTo(dynamite.LoggingConfig{
		Enabled: true,
		Level:   opts.logLevel,
		Format:  opts.logFormat,
	}, out)

	store := server.NewStore()

	if opts.tables != "" {
		seeds, err := loadTables(opts.tables)
		if err != nil {
			return err
		}

		if err := createTables(ctx, store, seeds); err != nil {
			return err
		}

		logger.Info().Int("tables", len(seeds)).Msg("tables created")
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", opts.addr, err)
	}

	srv := &http.Server{
		Handler:           server.NewServer(server.WithStore(store), server.WithLogger(logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("addr", ln.Addr().String()).Msg("dynamite-local listening")

	err = serve(ctx, srv, ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}
