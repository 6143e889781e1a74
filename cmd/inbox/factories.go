package main

import (
	"time"

	"github.com/hamba/cmd"
	"github.com/nrwiersma/inbox"
	"github.com/nrwiersma/inbox/engine"
	eninbox "github.com/nrwiersma/inbox/engine/inbox"
	"github.com/nrwiersma/inbox/engine/server"
	"github.com/pkg/errors"
)

const (
	clientLocal = "local"
	clientRPC   = "rpc"
)

const inboxDefaultInterval = inbox.DefaultInterval

const dateLayout = "2006-01-02"

// Application =============================

func newApplication(c *cmd.Context, e *engine.Engine, client inbox.Client) (*inbox.Application, error) {
	q, err := newQuery(c)
	if err != nil {
		return nil, err
	}

	app := inbox.NewApplication(inbox.Config{
		Engine:   e,
		Client:   client,
		Query:    q,
		Interval: c.Duration(flagInterval),
		Logger:   c.Logger(),
		Statter:  c.Statter(),
	})

	return app, nil
}

func newQuery(c *cmd.Context) (eninbox.Query, error) {
	q := eninbox.Query{
		Filter:        eninbox.Filter{Priority: c.Int(flagPriority)},
		StartIndex:    c.Int(flagStart),
		EndIndex:      c.Int(flagEnd),
		SortColumn:    eninbox.SortColumn(c.String(flagSort)),
		SortAscending: c.Bool(flagAsc),
	}

	var err error
	if q.Filter.DueFrom, err = parseDate(c.String(flagDueFrom)); err != nil {
		return q, errors.Wrap(err, "invalid due from date")
	}
	if q.Filter.DueTo, err = parseDate(c.String(flagDueTo)); err != nil {
		return q, errors.Wrap(err, "invalid due to date")
	}
	return q, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// Client ==================================

func newClient(c *cmd.Context, e *engine.Engine) (inbox.Client, error) {
	switch strategy := c.String(flagClient); strategy {
	case clientLocal:
		return e, nil

	case clientRPC:
		return server.NewClient(e), nil

	default:
		return nil, errors.Errorf("unknown client strategy %q", strategy)
	}
}

// Engine ==================================

func newEngine(c *cmd.Context) (*engine.Engine, error) {
	cfg := engine.NewConfig()
	cfg.Logger = c.Logger()
	cfg.Statter = c.Statter()

	if user := c.String(flagUser); user != "" {
		cfg.DefaultUser = user
	}

	return engine.New(cfg)
}
