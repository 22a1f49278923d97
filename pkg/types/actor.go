package types

import "github.com/google/uuid"

// Actor identifies the rep performing an operation. Core services receive it
// explicitly; nothing reads ambient session state.
type Actor struct {
	RepID   uuid.UUID
	Name    string
	Email   string
	IsAdmin bool
}
