// Package vango provides the reactive state container used by components.
//
// Signal[T] holds a value and notifies subscribed listeners when it changes:
//
//	open := NewSignal(0)
//	unsubscribe := open.Subscribe(ListenerFunc(func() { rerender() }))
//	open.Set(1)  // rerender runs
//	open.Update(func(n int) int { return n + 1 })
//
// # Thread Safety
//
// Reads and writes are guarded by a mutex and listeners are notified after
// the lock is released, so a listener may read the signal it observes.
package vango
