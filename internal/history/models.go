package history

import "time"

// Event is one recorded mutation of the contact store.
type Event struct {
	ID        string
	Op        string
	Detail    string
	CreatedAt time.Time
}
