package domain

import "github.com/google/uuid"

// EntityRef points a transaction at an account or category.
//
// Name is the linkage key used by every aggregate. ID is a best-effort pointer
// recorded at write time; it is only used to pick display metadata and may
// outlive the entity it names.
type EntityRef struct {
	ID   *uuid.UUID `json:"id,omitempty"`
	Name string     `json:"name"`
}

// NameRef builds a reference that carries only a name
func NameRef(name string) EntityRef {
	return EntityRef{Name: name}
}

// HasID reports whether the reference carries an id
func (r EntityRef) HasID() bool {
	return r.ID != nil && *r.ID != uuid.Nil
}
