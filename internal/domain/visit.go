package domain

// Represents a single service stop handled by the planner.
// A Visit has a unique, stable identifier and a fixed coordinate; ID is the
// only key used for set membership and removal. Payload is opaque caller data
// carried through planning unchanged.
type Visit struct {
	ID             string
	Coordinate     Coordinate
	ServiceMinutes float64
	Address        string
	Payload        any
}
