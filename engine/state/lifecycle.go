package state

// Status is the lifecycle status of a task.
type Status string

// Status constants.
const (
	StatusReady      Status = "Ready"
	StatusReserved   Status = "Reserved"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
)

// Statuses returns all the task statuses.
func Statuses() []Status {
	return []Status{StatusReady, StatusReserved, StatusInProgress, StatusCompleted, StatusFailed}
}

// IsValid returns true if the status is known.
func (s Status) IsValid() bool {
	switch s {
	case StatusReady, StatusReserved, StatusInProgress, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// IsHeld returns true if a task in this status has an owner.
func (s Status) IsHeld() bool {
	return s == StatusReserved || s == StatusInProgress
}

// Action is an operation that can be performed on a task.
type Action string

// Action constants.
const (
	ActionClaim    Action = "claim"
	ActionRelease  Action = "release"
	ActionStart    Action = "start"
	ActionStop     Action = "stop"
	ActionComplete Action = "complete"
	ActionFail     Action = "fail"
	ActionSave     Action = "save"
)

// IsValid returns true if the action is part of the action vocabulary.
func (a Action) IsValid() bool {
	switch a {
	case ActionClaim, ActionRelease, ActionStart, ActionStop, ActionComplete, ActionFail, ActionSave:
		return true
	default:
		return false
	}
}

// ParseAction parses an action tag.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", ErrUnsupportedAction
	}
	return a, nil
}

var allowedActions = map[Status][]Action{
	StatusReady:      {ActionClaim},
	StatusReserved:   {ActionRelease, ActionStart, ActionFail, ActionComplete},
	StatusInProgress: {ActionStop, ActionRelease, ActionComplete, ActionFail},
	StatusCompleted:  {},
	StatusFailed:     {},
}

// AllowedActions returns the actions permitted on a task in the given status.
func AllowedActions(status Status) []Action {
	actions := allowedActions[status]

	cp := make([]Action, len(actions))
	copy(cp, actions)
	return cp
}

// transition is the outcome of an action.
type transition struct {
	status      Status
	assignOwner bool
	mergeData   bool
}

var transitions = map[Action]transition{
	ActionClaim:    {status: StatusReserved, assignOwner: true},
	ActionRelease:  {status: StatusReady},
	ActionStart:    {status: StatusInProgress, assignOwner: true},
	ActionStop:     {status: StatusReserved, assignOwner: true},
	ActionComplete: {status: StatusCompleted, mergeData: true},
	ActionFail:     {status: StatusFailed, mergeData: true},
}

// applyAction applies the action to the task. The task must be a copy
// of the stored task, it is left untouched on error.
//
// Tags outside the action vocabulary are unsupported. Known actions
// must be in the allowed set before they are dispatched.
func applyAction(task *Task, action Action, user string, payload map[string]string) error {
	if !action.IsValid() {
		return ErrUnsupportedAction
	}

	if !task.IsActionAllowed(action) {
		return ErrActionNotAllowed
	}

	tr, ok := transitions[action]
	if !ok {
		return ErrUnsupportedAction
	}

	owner := ""
	if tr.assignOwner {
		owner = user
	}
	task.setStatus(tr.status, owner)

	if tr.mergeData && len(payload) > 0 {
		if task.Data == nil {
			task.Data = make(map[string]string, len(payload))
		}
		for k, v := range payload {
			task.Data[k] = v
		}
	}
	return nil
}
