package shared

// AggregateRoot is the entry point of an aggregate. It owns a global
// identity, maintains the aggregate's invariants, and is the only place
// state changes go through.
type AggregateRoot interface {
	// ID returns the aggregate's globally unique identifier.
	ID() string

	// Version returns the optimistic-concurrency version. The version is
	// advanced by the persistence boundary on every successful write,
	// never by the aggregate itself.
	Version() int64
}

// Entity has identity; two entities with equal fields but different IDs
// are different entities.
type Entity interface {
	ID() string
}

// ValueObject is immutable and compared by value. Go cannot enforce
// immutability, so value objects keep their fields private and expose
// only reads and copy-returning operations.
type ValueObject interface {
	Equals(other interface{}) bool
}
