package importers

import (
	"fmt"

	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/hsreplay"
)

const fallbackArchetypeName = "Other"

// Archetype is a named deck strategy tied to a player class.
type Archetype struct {
	ID      int
	Name    string
	ClassID int
	URL     string
}

// ArchetypeResolver maps archetype ids to archetypes for the duration of a
// run. It is read-only after construction and safe for concurrent use.
type ArchetypeResolver struct {
	archetypes map[int]Archetype
}

// NewArchetypeResolver copies the fetched directory into a resolver.
func NewArchetypeResolver(directory map[int]hsreplay.Archetype) *ArchetypeResolver {
	archetypes := make(map[int]Archetype, len(directory))
	for id, a := range directory {
		archetypes[id] = Archetype{ID: a.ID, Name: a.Name, ClassID: a.PlayerClass, URL: a.URL}
	}
	return &ArchetypeResolver{archetypes: archetypes}
}

// Resolve returns the known archetype for id, or an "Other" archetype whose
// class comes from classKey (e.g. "MAGE"). It never fails.
func (r *ArchetypeResolver) Resolve(id int, classKey string) Archetype {
	if a, ok := r.archetypes[id]; ok {
		return a
	}

	fallback := Archetype{
		ID:   id,
		Name: fallbackArchetypeName,
		URL:  fmt.Sprintf("/archetypes/%d", id),
	}
	if class, ok := entities.ClassByKey(classKey); ok {
		fallback.ClassID = class.ID
	}
	return fallback
}

// Len returns the number of known archetypes.
func (r *ArchetypeResolver) Len() int {
	return len(r.archetypes)
}
