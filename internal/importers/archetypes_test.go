package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/advisor/internal/hsreplay"
)

func TestArchetypeResolver(t *testing.T) {
	directory := map[int]hsreplay.Archetype{
		12: {ID: 12, Name: "Big Priest", PlayerClass: 6, URL: "/archetypes/12/big-priest"},
	}
	resolver := NewArchetypeResolver(directory)

	t.Run("known id", func(t *testing.T) {
		a := resolver.Resolve(12, "MAGE")
		assert.Equal(t, Archetype{ID: 12, Name: "Big Priest", ClassID: 6, URL: "/archetypes/12/big-priest"}, a)
	})

	t.Run("unknown id falls back to Other of the listing class", func(t *testing.T) {
		a := resolver.Resolve(99, "MAGE")
		assert.Equal(t, "Other", a.Name)
		assert.Equal(t, 4, a.ClassID)
		assert.Equal(t, "/archetypes/99", a.URL)
	})

	t.Run("unknown class key leaves class unset", func(t *testing.T) {
		a := resolver.Resolve(99, "BARD")
		assert.Equal(t, "Other", a.Name)
		assert.Zero(t, a.ClassID)
	})

	t.Run("directory is copied", func(t *testing.T) {
		delete(directory, 12)
		assert.Equal(t, 1, resolver.Len())
		assert.Equal(t, "Big Priest", resolver.Resolve(12, "").Name)
	})

	t.Run("nil directory", func(t *testing.T) {
		empty := NewArchetypeResolver(nil)
		assert.Zero(t, empty.Len())
		assert.Equal(t, "Other", empty.Resolve(1, "DRUID").Name)
	})
}
