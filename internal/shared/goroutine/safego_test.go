package goroutine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelops/internal/shared/logger"
)

func TestProtect(t *testing.T) {
	assert.True(t, Protect(logger.Nop(), "ok", func() {}))
	assert.False(t, Protect(logger.Nop(), "boom", func() { panic("boom") }))
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	SafeGo(logger.Nop(), "panicky", func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()
}
