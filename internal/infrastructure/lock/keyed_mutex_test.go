package lock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	m := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock("product-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedMutexIndependentKeysDoNotBlock(t *testing.T) {
	m := NewKeyedMutex()

	unlockA := m.Lock("product-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := m.Lock("product-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on an unrelated key blocked")
	}
}

func TestKeyedMutexMultiKeyOrderingAvoidsDeadlock(t *testing.T) {
	m := NewKeyedMutex()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := m.Lock("p1", "p2")
			defer unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := m.Lock("p2", "p1")
			defer unlock()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cross-ordered multi-key locking deadlocked")
	}
}

func TestKeyedMutexReleaseIsIdempotent(t *testing.T) {
	m := NewKeyedMutex()

	unlock := m.Lock("p1")
	unlock()
	unlock()

	unlock2 := m.Lock("p1")
	unlock2()

	m.mu.Lock()
	assert.Empty(t, m.entries)
	m.mu.Unlock()
}
