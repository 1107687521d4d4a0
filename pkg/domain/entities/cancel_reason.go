package entities

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CancelReason is an entry of the purchase order cancellation reason catalogue
type CancelReason struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewCancelReason creates a validated CancelReason
func NewCancelReason(name string) (*CancelReason, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: cancel reason name cannot be empty", ErrValidation)
	}
	return &CancelReason{ID: uuid.New(), Name: name}, nil
}
