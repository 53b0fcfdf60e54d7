// Package cmd provides the CLI commands for storefinder.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"storefinder/internal/config"
	"storefinder/internal/search"
	"storefinder/internal/ui"
)

// Version is set at build time
var Version = "dev"

// errNotTerminal is returned when the TUI is requested without a terminal to draw on
var errNotTerminal = errors.New("stdout is not a terminal; use 'storefinder search <query>'")

// NewRootCmd creates the root command for the storefinder CLI.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "storefinder [query]",
		Short: "Find stores by name or postcode",
		Long: `storefinder searches a store directory as you type.

Results arrive a page at a time; press Enter to show more.
When stdout is not a terminal the query is run once and printed.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if !isTerminal(cmd.OutOrStdout()) {
				if query == "" {
					return errNotTerminal
				}
				return runSearch(cmd.Context(), cmd, opts, query, searchOptions{format: "text"})
			}
			return runTUI(cmd.Context(), cmd, opts, query)
		},
	}

	cmd.SetVersionTemplate("storefinder version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "Config file")
	cmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", config.DefaultEndpoint, "Store directory search URL")
	cmd.PersistentFlags().IntVar(&opts.pageSize, "page-size", search.DefaultPageSize, "Stores requested per page")
	cmd.PersistentFlags().DurationVar(&opts.debounce, "debounce", search.DefaultDebounce, "Pause after typing before searching")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", config.DefaultConfig().Search.Timeout.Duration, "Request timeout")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Log file (default from config)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

func runTUI(ctx context.Context, cmd *cobra.Command, opts *globalOptions, query string) error {
	a, err := newApp(opts, cmd.Flags().Changed)
	if err != nil {
		return err
	}
	defer a.Close()

	forwarder := ui.NewForwarder()
	defer forwarder.Close()

	d := a.dispatcher(-1, forwarder.Snapshot)
	defer d.Close()

	model := ui.NewModel(d, a.cfg, a.logger)
	if query != "" {
		model.SetQuery(query)
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	model.SetProgram(p)
	forwarder.Attach(p)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		a.logger.Error("ui exited with error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("ui exited normally")
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
