package domain

// LocationKind classifies entries in the location registry.
type LocationKind string

const (
	KindFacility   LocationKind = "facility"
	KindCheckpoint LocationKind = "checkpoint"
	KindDepot      LocationKind = "depot"
)

// Represents a named geographic point in the transport network.
// A Location is immutable once loaded into the registry; identity is
// structural (name + coordinates), not a generated key.
type Location struct {
	Name    string
	Address string
	Coords  Coordinates
	Kind    LocationKind
	Contact string
}

// SamePlace reports whether two locations share coordinates.
// The optimizer deduplicates pickup/delivery points by this identity.
func (l Location) SamePlace(other Location) bool {
	return l.Coords == other.Coords
}
