package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestULIDGenerator_Generate(t *testing.T) {
	g := NewULIDGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := g.Generate()
		assert.Len(t, id, 26)
		assert.True(t, Valid(id))
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("../../etc/passwd"))
	assert.False(t, Valid("not-a-ulid"))
}
