package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

const stateTesting State = "testing"

func TestManagerDefaultsToIdle(t *testing.T) {
	m := NewMemoryManager()
	assert.Equal(t, StateIdle, m.StateOf(42))
	assert.False(t, m.InProgress(42))
}

func TestManagerSetAndClear(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(42, stateTesting)
	assert.Equal(t, stateTesting, m.StateOf(42))
	assert.True(t, m.InProgress(42))
	assert.False(t, m.InProgress(43), "state must be partitioned by user")

	m.ClearState(42)
	assert.Equal(t, StateIdle, m.StateOf(42))
	assert.False(t, m.InProgress(42))
}

func TestManagerSetIdleDropsEntry(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(7, stateTesting)
	m.SetState(7, StateIdle)
	assert.False(t, m.InProgress(7))
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewMemoryManager()
	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			m.SetState(uid, stateTesting)
			_ = m.StateOf(uid)
			m.ClearState(uid)
		}(i)
	}
	wg.Wait()
	for i := int64(0); i < 50; i++ {
		assert.Equal(t, StateIdle, m.StateOf(i))
	}
}
