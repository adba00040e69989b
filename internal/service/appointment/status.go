package appointment

const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

const (
	TypeCreate   = "create"
	TypeCancel   = "cancel"
	TypeSchedule = "schedule"
)

func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCancelled:
		return true
	}
	return false
}

func validType(t string) bool {
	switch t {
	case TypeCreate, TypeCancel, TypeSchedule:
		return true
	}
	return false
}

// CanTransition reports whether an appointment in status from may move to
// status to. Cancellation is always allowed; scheduling only from pending
// or scheduled; nothing returns to pending once it has left it.
func CanTransition(from, to string) bool {
	switch to {
	case StatusCancelled:
		return true
	case StatusScheduled:
		return from == StatusPending || from == StatusScheduled
	case StatusPending:
		return from == StatusPending
	}
	return false
}
