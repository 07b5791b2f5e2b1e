package locking

import (
	"context"
	"sync"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
)

// KeyedMutex serializes operations per string key (an IMEI, a PO number,
// a shipment ID). Different keys proceed in parallel; waiters on a busy
// key block up to the configured timeout.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
	timeout time.Duration
}

type entry struct {
	ch   chan struct{} // capacity 1, holds the lock token
	refs int
}

// NewKeyedMutex creates a keyed mutex with the given acquire timeout
func NewKeyedMutex(timeout time.Duration) *KeyedMutex {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KeyedMutex{
		entries: make(map[string]*entry),
		timeout: timeout,
	}
}

// Acquire blocks until the key's lock is held, the context is done, or
// the acquire timeout elapses. On success it returns a release function
// that must be called exactly once.
func (m *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		e.ch <- struct{}{}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case <-e.ch:
		return func() { m.release(key, e) }, nil
	case <-ctx.Done():
		m.unref(key, e)
		return nil, ctx.Err()
	case <-timer.C:
		m.unref(key, e)
		return nil, shared.ErrLockTimeout
	}
}

func (m *KeyedMutex) release(key string, e *entry) {
	e.ch <- struct{}{}
	m.unref(key, e)
}

func (m *KeyedMutex) unref(key string, e *entry) {
	m.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}

// Lock key helpers shared by the application services

// IMEIKey returns the lock key guarding one inventory unit
func IMEIKey(imei string) string {
	return "imei:" + imei
}

// POKey returns the lock key guarding one purchase order
func POKey(poNumber string) string {
	return "po:" + poNumber
}

// ShipmentKey returns the lock key guarding one shipment
func ShipmentKey(shipmentNumber string) string {
	return "shipment:" + shipmentNumber
}
