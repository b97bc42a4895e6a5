package uuid_test

import (
	"sync"
	"testing"

	"github.com/KirkDiggler/dungeon-builder/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	first, second := gen.New(), gen.New()
	assert.True(t, uuid.IsValid(first))
	assert.NotEqual(t, first, second)
	assert.False(t, uuid.IsValid("layout-1"))
}

func TestSequentialGenerator(t *testing.T) {
	gen := uuid.NewSequentialGenerator("layout")
	assert.Equal(t, "layout-1", gen.New())
	assert.Equal(t, "layout-2", gen.New())

	seen := sync.Map{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(gen.New(), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
}
