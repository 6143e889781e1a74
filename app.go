package inbox

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hamba/pkg/log"
	"github.com/hamba/pkg/stats"
	"github.com/nrwiersma/inbox/engine"
	"github.com/nrwiersma/inbox/engine/inbox"
	"github.com/nrwiersma/inbox/engine/state"
)

// DefaultInterval is the default time between inbox prints.
const DefaultInterval = 10 * time.Second

// Engine represents a task engine that runs routines.
type Engine interface {
	AddRoutine(routine engine.Routine)
}

// Client represents a task client.
type Client interface {
	ListTasks(q inbox.Query) (*inbox.Result, error)
	GetTask(id string) (*state.Task, error)
	CreateTask(task *state.Task) (*state.Task, error)
	UpdateTask(id string, upd state.TaskUpdate) error
	ExecuteAction(id string, action state.Action, user string, payload map[string]string) (*state.Task, error)
}

// Config configures an application.
type Config struct {
	Engine Engine
	Client Client

	// Query is the inbox page that is printed.
	Query inbox.Query

	// Interval is the time between inbox prints.
	Interval time.Duration

	// Out is where the inbox is printed. It defaults to stdout.
	Out io.Writer

	Logger  log.Logger
	Statter stats.Statter
}

// Application represents the application.
type Application struct {
	client Client
	query  inbox.Query

	interval time.Duration
	out      io.Writer

	logger  log.Logger
	statter stats.Statter
}

// NewApplication creates an instance of Application.
func NewApplication(cfg Config) *Application {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Null
	}
	statter := cfg.Statter
	if statter == nil {
		statter = stats.Null
	}

	app := &Application{
		client:   cfg.Client,
		query:    cfg.Query,
		interval: interval,
		out:      out,
		logger:   logger,
		statter:  statter,
	}

	cfg.Engine.AddRoutine(app.printInbox)

	return app
}

func (a *Application) printInbox(ctx context.Context) {
	a.logger.Info("Printing inbox", "interval", a.interval.String())

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		if err := a.PrintInbox(); err != nil {
			a.logger.Error("Error printing inbox", "error", err)
		}
		a.reportStatuses()

		select {
		case <-ctx.Done():
			a.logger.Info("Engine stopped, stopping!")
			return

		case <-ticker.C:
		}
	}
}

// PrintInbox prints the configured inbox page.
func (a *Application) PrintInbox() error {
	res, err := a.client.ListTasks(a.query)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 10, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "")
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", "ID", "Name", "Priority", "Status", "Owner", "Due", "Actions")
	for _, task := range res.Tasks {
		due := ""
		if task.HasDueDate() {
			due = task.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n", task.ID, task.Name, task.Priority, task.Status, task.Owner, due, joinActions(task.AllowedActions))
	}
	fmt.Fprintf(tw, "\nShowing %d of %d (page size %d, from %d)\n", len(res.Tasks), res.TotalResults, res.ItemsPerPage, res.StartIndex)
	return tw.Flush()
}

func (a *Application) reportStatuses() {
	for _, status := range state.Statuses() {
		res, err := a.client.ListTasks(inbox.Query{
			Filter:     inbox.Filter{Priority: inbox.AnyPriority, Status: status},
			EndIndex:   0,
			SortColumn: inbox.SortName,
		})
		if err != nil {
			a.logger.Error("Error counting tasks", "status", status, "error", err)
			continue
		}

		a.statter.Gauge("inbox.status."+strings.ToLower(string(status)), float64(res.TotalResults), 1.0)
	}
}

func joinActions(actions []state.Action) string {
	strs := make([]string, 0, len(actions))
	for _, a := range actions {
		strs = append(strs, string(a))
	}
	return strings.Join(strs, ",")
}

// Close closes the application.
func (a *Application) Close() error {
	return nil
}
