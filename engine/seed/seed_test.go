package seed_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nrwiersma/inbox/engine/seed"
	"github.com/nrwiersma/inbox/engine/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func TestGenerate(t *testing.T) {
	tasks, seedUsed := seed.Generate(seed.Options{Count: 42, Seed: 1, Now: now, Users: []string{"ewittman"}})

	assert.Equal(t, int64(1), seedUsed)
	require.Len(t, tasks, 42)
	for i, task := range tasks {
		assert.Equal(t, "Task "+task.ID, task.Name)
		assert.True(t, task.Priority >= state.MinPriority && task.Priority <= state.MaxPriority)
		assert.True(t, now.AddDate(0, 0, i).Equal(task.DueDate))
		assert.Equal(t, state.AllowedActions(task.Status), task.AllowedActions)
		assert.Equal(t, task.Status.IsHeld(), task.Owner != "")
		assert.Equal(t, seed.TaskType, task.Type)
		assert.NoError(t, task.Validate())
	}
}

func TestGenerate_IsReproducible(t *testing.T) {
	opts := seed.Options{Count: 20, Seed: 42, Now: now, Users: []string{"ewittman", "kstam"}}

	tasks1, _ := seed.Generate(opts)
	tasks2, _ := seed.Generate(opts)

	assert.Equal(t, tasks1, tasks2)
}

func TestGenerate_PicksSeed(t *testing.T) {
	_, seedUsed := seed.Generate(seed.Options{Count: 1})

	assert.NotZero(t, seedUsed)
}

func TestGenerate_NoUsersNoClaims(t *testing.T) {
	tasks, _ := seed.Generate(seed.Options{Count: 42, Seed: 7, Now: now})

	for _, task := range tasks {
		assert.Equal(t, state.StatusReady, task.Status)
		assert.Equal(t, "", task.Owner)
	}
}

func TestWriteReadFixture(t *testing.T) {
	tasks, _ := seed.Generate(seed.Options{Count: 5, Seed: 3, Now: now, Users: []string{"ewittman"}})
	var buf bytes.Buffer

	err := seed.WriteFixture(&buf, tasks)
	require.NoError(t, err)
	got, err := seed.ReadFixture(&buf)

	require.NoError(t, err)
	require.Len(t, got, len(tasks))
	for i, task := range got {
		want := tasks[i]
		assert.Equal(t, want.ID, task.ID)
		assert.Equal(t, want.Name, task.Name)
		assert.Equal(t, want.Description, task.Description)
		assert.Equal(t, want.Owner, task.Owner)
		assert.Equal(t, want.Priority, task.Priority)
		assert.Equal(t, want.Status, task.Status)
		assert.Equal(t, want.AllowedActions, task.AllowedActions)
		assert.Equal(t, want.Data, task.Data)
		assert.Equal(t, want.Form, task.Form)
		assert.True(t, want.DueDate.Equal(task.DueDate))
	}
}

func TestReadFixture(t *testing.T) {
	in := `
tasks:
  - id: review-1
    name: Review deployment
    priority: 2
    due_date: 2026-10-20T12:00:00Z
    data:
      env: staging
  - id: review-2
    name: Approve release
    priority: 1
    status: Reserved
    owner: ewittman
`

	got, err := seed.ReadFixture(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "review-1", got[0].ID)
	assert.Equal(t, state.StatusReady, got[0].Status)
	assert.Equal(t, []state.Action{state.ActionClaim}, got[0].AllowedActions)
	assert.True(t, time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC).Equal(got[0].DueDate))
	assert.Equal(t, map[string]string{"env": "staging"}, got[0].Data)
	assert.Equal(t, state.StatusReserved, got[1].Status)
	assert.Equal(t, "ewittman", got[1].Owner)
	assert.False(t, got[1].HasDueDate())
}

func TestReadFixture_Empty(t *testing.T) {
	got, err := seed.ReadFixture(strings.NewReader(""))

	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestReadFixture_Invalid(t *testing.T) {
	_, err := seed.ReadFixture(strings.NewReader("tasks: [this is: not valid"))

	assert.Error(t, err)
}
