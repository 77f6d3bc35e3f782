package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/docxposts/internal/config"
	"git.home.luguber.info/inful/docxposts/internal/errors"
	"git.home.luguber.info/inful/docxposts/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit     int    `short:"n" default:"20" help:"Number of entries to show"`
	RunID     string `name:"run" placeholder:"ID" help:"Only show entries of this run"`
	HistoryDB string `name:"history-db" placeholder:"PATH" help:"SQLite ledger to read; overrides history.db"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, config.Overrides{HistoryDB: h.HistoryDB})
	if err != nil {
		return err
	}
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.ConfigInvalid("history.db", "is not configured")
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	var events []history.Event
	if h.RunID != "" {
		events, err = store.ByRun(ctx, h.RunID)
	} else {
		events, err = store.Recent(ctx, h.Limit)
	}
	if err != nil {
		return errors.InternalError("query history", err)
	}

	tw := tabwriter.NewWriter(g.out(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tRUN\tKIND\tSTATUS\tSOURCE\tOUTPUT\tREASON")
	for _, e := range events {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime), shortRunID(e.RunID), e.Kind, e.Status, e.Source, e.Output, e.Reason)
	}
	return tw.Flush()
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
