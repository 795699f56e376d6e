package checkout

// Status tracks a checkout through its linear flow. There is no retry
// and no compensation: a failure at any phase is terminal.
type Status string

const (
	StatusInitiated    Status = "INITIATED"
	StatusValidating   Status = "VALIDATING"
	StatusSubmitting   Status = "SUBMITTING"
	StatusDecrementing Status = "DECREMENTING"
	StatusCompleted    Status = "COMPLETED"
	StatusFailed       Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

var transitions = map[Status][]Status{
	StatusInitiated:    {StatusValidating, StatusFailed},
	StatusValidating:   {StatusSubmitting, StatusFailed},
	StatusSubmitting:   {StatusDecrementing, StatusFailed},
	StatusDecrementing: {StatusCompleted, StatusFailed},
}

// CanTransitionTo reports whether the flow may move from one status to
// another. Terminal statuses allow nothing.
func CanTransitionTo(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
