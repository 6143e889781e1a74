package engine

import (
	"context"
	"sync"
)

// Routine is a routine run while the engine is running.
type Routine func(ctx context.Context)

// RoutineManager manages routines run alongside the engine.
type RoutineManager struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	routines []Routine
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// Register registers a routine to run. If the manager is already
// running, the routine is started immediately.
func (m *RoutineManager) Register(routine Routine) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.routines = append(m.routines, routine)

	if m.running {
		m.run(routine)
	}
}

// Start starts the registered routines.
func (m *RoutineManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}
	m.running = true

	m.ctx, m.cancel = context.WithCancel(context.Background())
	for _, routine := range m.routines {
		m.run(routine)
	}
}

func (m *RoutineManager) run(routine Routine) {
	m.wg.Add(1)
	go func(ctx context.Context) {
		defer m.wg.Done()
		routine(ctx)
	}(m.ctx)
}

// Stop signals all the routines to stop and waits for them to return.
func (m *RoutineManager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false

	m.cancel()
	m.cancel = nil
	m.ctx = nil
	m.mu.Unlock()

	m.wg.Wait()
}

// IsRunning determines if the routines are running.
func (m *RoutineManager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.running
}
