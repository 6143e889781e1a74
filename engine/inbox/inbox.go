// Package inbox implements filtering, sorting and pagination of tasks
// for presentation in an inbox.
package inbox

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nrwiersma/inbox/engine/state"
	"github.com/pkg/errors"
)

// AnyPriority disables priority filtering.
const AnyPriority = -1

// Query errors.
var (
	ErrUnknownSortColumn = errors.New("unknown sort column")
	ErrInvalidRange      = errors.New("invalid page range")
)

// SortColumn is a column tasks can be sorted by.
type SortColumn string

// SortColumn constants.
const (
	SortName     SortColumn = "name"
	SortPriority SortColumn = "priority"
	SortOwner    SortColumn = "owner"
	SortStatus   SortColumn = "status"
	SortDueDate  SortColumn = "dueDate"
)

// Filter selects the tasks shown in the inbox. A task passes the filter
// if it matches all active criteria.
type Filter struct {
	// Priority is the exact priority to match. A negative value
	// disables the priority filter.
	Priority int

	// DueFrom is the inclusive lower due date bound. Tasks without a
	// due date are never excluded by it.
	DueFrom time.Time

	// DueTo is the inclusive upper due date bound. Tasks without a
	// due date are never excluded by it.
	DueTo time.Time

	// Status is the exact status to match, if set.
	Status state.Status

	// Owner is the exact owner to match, if set.
	Owner string
}

// Matches determines if the task passes the filter.
func (f Filter) Matches(task *state.Task) bool {
	if f.Priority >= 0 && task.Priority != f.Priority {
		return false
	}
	if task.HasDueDate() {
		if !f.DueFrom.IsZero() && task.DueDate.Before(f.DueFrom) {
			return false
		}
		if !f.DueTo.IsZero() && task.DueDate.After(f.DueTo) {
			return false
		}
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.Owner != "" && task.Owner != f.Owner {
		return false
	}
	return true
}

// Query describes a page of the inbox.
type Query struct {
	Filter Filter

	// StartIndex and EndIndex are the inclusive bounds of the page
	// over the filtered and sorted tasks.
	StartIndex int
	EndIndex   int

	SortColumn    SortColumn
	SortAscending bool
}

// Result is a page of the inbox.
type Result struct {
	Tasks        []*state.Task
	StartIndex   int
	ItemsPerPage int
	TotalResults int
}

// Run filters, sorts and paginates the tasks.
func Run(tasks []*state.Task, q Query) (*Result, error) {
	if q.StartIndex < 0 || q.EndIndex < q.StartIndex {
		return nil, errors.WithMessage(ErrInvalidRange, fmt.Sprintf("[%d, %d]", q.StartIndex, q.EndIndex))
	}

	cmp, err := comparator(q.SortColumn)
	if err != nil {
		return nil, err
	}

	filtered := make([]*state.Task, 0, len(tasks))
	for _, task := range tasks {
		if q.Filter.Matches(task) {
			filtered = append(filtered, task)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]

		c := cmp(a, b)
		if !q.SortAscending {
			c = -c
		}
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		return c < 0
	})

	page := []*state.Task{}
	if q.StartIndex < len(filtered) {
		end := q.EndIndex + 1
		if end > len(filtered) {
			end = len(filtered)
		}
		page = append(page, filtered[q.StartIndex:end]...)
	}

	return &Result{
		Tasks:        page,
		StartIndex:   q.StartIndex,
		ItemsPerPage: q.EndIndex - q.StartIndex + 1,
		TotalResults: len(filtered),
	}, nil
}

type compareFunc func(a, b *state.Task) int

func comparator(col SortColumn) (compareFunc, error) {
	switch col {
	case SortName:
		return func(a, b *state.Task) int { return strings.Compare(a.Name, b.Name) }, nil
	case SortPriority:
		return func(a, b *state.Task) int { return compareInt(a.Priority, b.Priority) }, nil
	case SortOwner:
		return func(a, b *state.Task) int { return strings.Compare(a.Owner, b.Owner) }, nil
	case SortStatus:
		return func(a, b *state.Task) int { return strings.Compare(string(a.Status), string(b.Status)) }, nil
	case SortDueDate:
		return compareDueDate, nil
	default:
		return nil, errors.WithMessage(ErrUnknownSortColumn, string(col))
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareDueDate orders tasks without a due date first.
func compareDueDate(a, b *state.Task) int {
	switch {
	case a.DueDate.Equal(b.DueDate):
		return 0
	case a.DueDate.Before(b.DueDate):
		return -1
	default:
		return 1
	}
}
