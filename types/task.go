package types

import "time"

// Task categories.
const (
	CategoryWork     = "Work"
	CategoryStudy    = "Study"
	CategoryPersonal = "Personal"
)

// Task and group statuses.
const (
	StatusInProgress = "InProgress"
	StatusPaused     = "Paused"
	StatusRevision   = "Revision"
	StatusDone       = "Done"
)

// Task is a single task owned by exactly one user. Tasks live in a
// sub-collection keyed by the owner's user id.
type Task struct {
	// ID is the document identifier of the task within the owner's
	// task collection.
	ID string `json:"id" firestore:"-"`

	// Name is the short title of the task.
	Name string `json:"name" firestore:"name"`

	// Description holds the longer free-form text of the task.
	Description string `json:"description" firestore:"description"`

	// TimeUntilFinish is the due date as sent by the client
	// (YYYY-MM-DD). The field name is part of the wire format.
	TimeUntilFinish string `json:"timeUntilFinish" firestore:"timeUntilFinish"`

	// Category is one of the Category* constants.
	Category string `json:"category" firestore:"category"`

	// Status is one of the Status* constants.
	Status string `json:"status" firestore:"status"`

	// CreatedAt is set server-side when the task is created.
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
