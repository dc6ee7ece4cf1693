package product

import (
	"github.com/google/uuid"
)

// ID is the value object wrapping a product's unique identifier.
type ID struct {
	value uuid.UUID
}

// NewID generates a fresh random identifier.
func NewID() ID {
	return ID{value: uuid.New()}
}

// ParseID parses the canonical textual form. Fails with an invalid-id
// domain error when the text is not a valid UUID.
func ParseID(s string) (ID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return ID{}, NewInvalidIDError(s)
	}
	return ID{value: v}, nil
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return id.value == uuid.Nil
}

// Equals compares by value.
func (id ID) Equals(other ID) bool {
	return id.value == other.value
}

// String returns the canonical textual form.
func (id ID) String() string {
	return id.value.String()
}
