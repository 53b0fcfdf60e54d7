package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storefinder/internal/domain"
	"storefinder/internal/search"
	"storefinder/internal/ui/views"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	all    bool
	format string // "text", "json"
}

func newSearchCmd(global *globalOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run one search and print the results",
		Long: `Run one search against the store directory and print the first page.

Examples:
  storefinder search lon
  storefinder search "al1 2" --all
  storefinder search br --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, global, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Keep loading pages until every match is shown")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

// searchResult is the JSON output of the search command
type searchResult struct {
	Query      string         `json:"query"`
	Stores     []domain.Store `json:"stores"`
	TotalCount int            `json:"total_count"`
}

func runSearch(ctx context.Context, cmd *cobra.Command, global *globalOptions, query string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q: want text or json", opts.format)
	}

	a, err := newApp(global, cmd.Flags().Changed)
	if err != nil {
		return err
	}
	defer a.Close()

	updates := newMailbox()
	// Nobody is typing, so there is nothing to wait out
	d := a.dispatcher(0, updates.put)
	defer d.Close()

	snap, err := updates.waitIdle(ctx, d.QueryChanged(query))
	if err != nil {
		return err
	}
	for opts.all && snap.Err == nil && snap.MoreAvailable() {
		next, err := d.LoadMore()
		if err != nil {
			return fmt.Errorf("failed to load more: %w", err)
		}
		if snap, err = updates.waitIdle(ctx, next); err != nil {
			return err
		}
	}
	if snap.Err != nil {
		return fmt.Errorf("search %q failed: %w", query, snap.Err)
	}

	a.logger.Info("search finished",
		slog.String("query", query),
		slog.Int("shown", len(snap.Results)),
		slog.Int("total", snap.TotalCount),
	)

	if opts.format == "json" {
		return writeJSON(cmd.OutOrStdout(), snap)
	}
	return writeText(cmd.OutOrStdout(), snap)
}

func writeJSON(w io.Writer, snap search.Snapshot) error {
	stores := snap.Results
	if stores == nil {
		stores = []domain.Store{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(searchResult{Query: snap.Query, Stores: stores, TotalCount: snap.TotalCount})
}

func writeText(w io.Writer, snap search.Snapshot) error {
	if snap.TotalCount == 0 {
		_, err := fmt.Fprintln(w, views.NoResultsMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range snap.Results {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Postcode)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, views.FormatCount(len(snap.Results), snap.TotalCount))
	return err
}

// mailbox keeps the newest snapshot delivered by the dispatcher
type mailbox struct {
	ch chan search.Snapshot
}

func newMailbox() *mailbox {
	return &mailbox{ch: make(chan search.Snapshot, 1)}
}

// put never blocks: an unread older snapshot is replaced
func (m *mailbox) put(snap search.Snapshot) {
	for {
		select {
		case m.ch <- snap:
			return
		default:
		}
		select {
		case old := <-m.ch:
			if old.Newer(snap) {
				snap = old
			}
		default:
		}
	}
}

// waitIdle blocks until no request is scheduled or outstanding and the query has an outcome
func (m *mailbox) waitIdle(ctx context.Context, snap search.Snapshot) (search.Snapshot, error) {
	for !idle(snap) {
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case next := <-m.ch:
			if next.Newer(snap) {
				snap = next
			}
		}
	}
	return snap, nil
}

func idle(s search.Snapshot) bool {
	return !s.Busy && !s.Scheduled && (s.Settled || s.Err != nil)
}

