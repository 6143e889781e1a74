package main

import (
	"log"
	"os"

	"github.com/hamba/cmd"
	"github.com/nrwiersma/inbox/engine"
	"github.com/nrwiersma/inbox/engine/inbox"
	"gopkg.in/urfave/cli.v2"
)

import _ "github.com/joho/godotenv/autoload"

const (
	flagSeedCount = "seed-count"
	flagSeed      = "seed"
	flagFixture   = "fixture"
	flagUsers     = "users"
	flagUser      = "user"
	flagClient    = "client"
	flagInterval  = "interval"
	flagPriority  = "priority"
	flagDueFrom   = "due-from"
	flagDueTo     = "due-to"
	flagSort      = "sort"
	flagAsc       = "asc"
	flagStart     = "start"
	flagEnd       = "end"
	flagOut       = "out"
)

var version = "¯\\_(ツ)_/¯"

var seedFlags = cmd.Flags{
	&cli.IntFlag{
		Name:    flagSeedCount,
		Usage:   "The number of tasks to generate.",
		Value:   42,
		EnvVars: []string{"INBOX_SEED_COUNT"},
	},
	&cli.Int64Flag{
		Name:    flagSeed,
		Usage:   "The random seed for generated tasks. Zero picks a seed from the clock.",
		EnvVars: []string{"INBOX_SEED"},
	},
	&cli.StringSliceFlag{
		Name:    flagUsers,
		Usage:   "The users that may have reserved a generated task.",
		EnvVars: []string{"INBOX_USERS"},
	},
}

var commands = []*cli.Command{
	{
		Name:  "agent",
		Usage: "Run the task engine and print the inbox",
		Flags: cmd.Flags{
			&cli.StringFlag{
				Name:    flagFixture,
				Usage:   "The YAML fixture to seed tasks from, instead of generating them.",
				EnvVars: []string{"INBOX_FIXTURE"},
			},
			&cli.StringFlag{
				Name:    flagUser,
				Usage:   "The user acting on tasks.",
				Value:   engine.DefaultUser,
				EnvVars: []string{"INBOX_USER"},
			},
			&cli.StringFlag{
				Name:    flagClient,
				Usage:   "The client strategy to query the engine with (local, rpc).",
				Value:   clientLocal,
				EnvVars: []string{"INBOX_CLIENT"},
			},
			&cli.DurationFlag{
				Name:    flagInterval,
				Usage:   "The interval between inbox prints.",
				Value:   inboxDefaultInterval,
				EnvVars: []string{"INBOX_INTERVAL"},
			},
			&cli.IntFlag{
				Name:    flagPriority,
				Usage:   "The priority to filter by. A negative value shows all priorities.",
				Value:   inbox.AnyPriority,
				EnvVars: []string{"INBOX_PRIORITY"},
			},
			&cli.StringFlag{
				Name:    flagDueFrom,
				Usage:   "The inclusive lower due date bound (YYYY-MM-DD).",
				EnvVars: []string{"INBOX_DUE_FROM"},
			},
			&cli.StringFlag{
				Name:    flagDueTo,
				Usage:   "The inclusive upper due date bound (YYYY-MM-DD).",
				EnvVars: []string{"INBOX_DUE_TO"},
			},
			&cli.StringFlag{
				Name:    flagSort,
				Usage:   "The column to sort by (name, priority, owner, status, dueDate).",
				Value:   string(inbox.SortDueDate),
				EnvVars: []string{"INBOX_SORT"},
			},
			&cli.BoolFlag{
				Name:    flagAsc,
				Usage:   "Sort ascending.",
				Value:   true,
				EnvVars: []string{"INBOX_ASC"},
			},
			&cli.IntFlag{
				Name:    flagStart,
				Usage:   "The inclusive start index of the inbox page.",
				Value:   0,
				EnvVars: []string{"INBOX_START"},
			},
			&cli.IntFlag{
				Name:    flagEnd,
				Usage:   "The inclusive end index of the inbox page.",
				Value:   9,
				EnvVars: []string{"INBOX_END"},
			},
		}.Merge(seedFlags, cmd.CommonFlags),
		Action: runAgent,
	},
	{
		Name:  "seed",
		Usage: "Generate a YAML task fixture",
		Flags: cmd.Flags{
			&cli.StringFlag{
				Name:    flagOut,
				Usage:   "The file to write the fixture to. Defaults to stdout.",
				EnvVars: []string{"INBOX_OUT"},
			},
		}.Merge(seedFlags, cmd.CommonFlags),
		Action: runSeed,
	},
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "inbox",
		Version:  version,
		Commands: commands,
	}
}

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
