package main

import (
	"github.com/hamba/cmd"
	"gopkg.in/urfave/cli.v2"
)

func runAgent(c *cli.Context) error {
	ctx, err := cmd.NewContext(c)
	if err != nil {
		return err
	}

	e, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	tasks, err := loadTasks(ctx)
	if err != nil {
		return err
	}
	if err := e.Seed(tasks); err != nil {
		return err
	}

	client, err := newClient(ctx, e)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, e, client)
	if err != nil {
		return err
	}
	defer app.Close()

	<-cmd.WaitForSignals()

	return nil
}
