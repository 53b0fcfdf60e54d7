// Package main serves the store directory search endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"storefinder/internal/domain"
	"storefinder/internal/logging"
	"storefinder/internal/storeindex"
)

// serverOptions holds CLI flags for the server.
type serverOptions struct {
	addr      string
	path      string
	data      string
	cacheSize int
	logFile   string
	debug     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts serverOptions

	cmd := &cobra.Command{
		Use:   "storeserver",
		Short: "Serve the store directory search endpoint",
		Long: `storeserver answers GET <path>?q=<query>&start_with=<offset>&n=<count>
with {"portion": [...], "total_count": N}.

Stores whose postcode contains the query come first, then stores whose
name contains it. With --data the JSON file is reloaded when it changes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, nil)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8888", "Listen address")
	cmd.Flags().StringVar(&opts.path, "path", "/task2", "Search endpoint path")
	cmd.Flags().StringVar(&opts.data, "data", "", "JSON file of {name, postcode} stores (default: built-in sample)")
	cmd.Flags().IntVar(&opts.cacheSize, "cache-size", storeindex.DefaultCacheSize, "Number of cached match lists")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Log file (default: stderr)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

// run serves until ctx is cancelled. ready, when set, receives the bound address.
func run(ctx context.Context, opts serverOptions, ready chan<- string) error {
	level := "info"
	if opts.debug {
		level = "debug"
	}
	logger, cleanup, err := logging.Setup(logging.Config{
		Level:    level,
		FilePath: opts.logFile,
		Output:   os.Stderr,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	stores, err := loadStores(opts.data)
	if err != nil {
		return err
	}
	ix, err := storeindex.New(stores, opts.cacheSize)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(opts.path, storeindex.NewHandler(ix, logger))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprintf(w, "ok %d stores\n", ix.Len())
	})

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", opts.addr, err)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving",
			slog.String("addr", ln.Addr().String()),
			slog.String("path", opts.path),
			slog.Int("stores", ix.Len()),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if opts.data != "" {
		g.Go(func() error {
			return storeindex.Watch(gctx, ix, opts.data, logger)
		})
	}

	if ready != nil {
		ready <- ln.Addr().String()
	}

	err = g.Wait()
	logger.Info("stopped")
	return err
}

func loadStores(path string) ([]domain.Store, error) {
	if path == "" {
		return storeindex.SampleStores()
	}
	return storeindex.LoadFile(path)
}
