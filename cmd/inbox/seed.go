package main

import (
	"io"
	"os"
	"time"

	"github.com/hamba/cmd"
	"github.com/nrwiersma/inbox/engine/seed"
	"github.com/nrwiersma/inbox/engine/state"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v2"
)

func runSeed(c *cli.Context) error {
	ctx, err := cmd.NewContext(c)
	if err != nil {
		return err
	}

	tasks := generateTasks(ctx)

	var w io.Writer = os.Stdout
	if path := ctx.String(flagOut); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "seed: error creating fixture file")
		}
		defer f.Close()

		w = f
	}

	return seed.WriteFixture(w, tasks)
}

// loadTasks loads the tasks to seed the engine with, either from a
// fixture file or generated.
func loadTasks(c *cmd.Context) ([]*state.Task, error) {
	path := c.String(flagFixture)
	if path == "" {
		return generateTasks(c), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "seed: error opening fixture")
	}
	defer f.Close()

	tasks, err := seed.ReadFixture(f)
	if err != nil {
		return nil, err
	}

	c.Logger().Info("Loaded fixture", "path", path, "count", len(tasks))
	return tasks, nil
}

func generateTasks(c *cmd.Context) []*state.Task {
	tasks, s := seed.Generate(seed.Options{
		Count: c.Int(flagSeedCount),
		Seed:  c.Int64(flagSeed),
		Now:   time.Now(),
		Users: c.StringSlice(flagUsers),
	})

	c.Logger().Info("Generated tasks", "count", len(tasks), "seed", s)
	return tasks
}
