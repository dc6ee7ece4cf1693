package product

// Status is the closed product status enumeration.
type Status string

const (
	// StatusActive marks a product available for sale.
	StatusActive Status = "ACTIVE"

	// StatusInactive marks a product withdrawn from sale.
	StatusInactive Status = "INACTIVE"
)

// DefaultStatus is the status assigned to new products when none is given.
func DefaultStatus() Status {
	return StatusActive
}

// ParseStatus validates a textual status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusInactive:
		return Status(s), nil
	default:
		return "", NewInvalidStatusError(s)
	}
}

// IsActive reports whether the status is ACTIVE.
func (s Status) IsActive() bool {
	return s == StatusActive
}

// IsInactive reports whether the status is INACTIVE.
func (s Status) IsInactive() bool {
	return s == StatusInactive
}
