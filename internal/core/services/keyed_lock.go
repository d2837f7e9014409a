package services

import "sync"

// keyedLock serializes read-modify-write sequences per invoice id so that no
// two concurrent edits or status updates interleave on the same invoice.
// Query paths never take it. Entries are never reclaimed; the working set is
// bounded by the number of invoices touched by this process.
type keyedLock struct {
	locks sync.Map // int64 -> *sync.Mutex
}

func (k *keyedLock) lock(id int64) func() {
	v, _ := k.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
