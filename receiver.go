// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import "sync"

// Receiver drives one consumer-side wait on a foreign future to its
// settled outcome. The mutex serializes concurrent wake attempts so the
// owned future is polled at most once to a settled status; the wrapped
// poll is not re-entrant-safe past that point.
type Receiver struct {
	mu     sync.Mutex
	fut    Awaitable
	out    Result
	status PollStatus
}

// NewReceiver returns a receiver waiting on fut.
func NewReceiver(fut Awaitable) *Receiver {
	return &Receiver{fut: fut, status: PollPending}
}

// Wake polls the owned future once under the receiver lock and stores
// the outcome. A wake arriving after the receiver settled is a no-op
// returning WakeDead: the racing poll already happened and must not be
// repeated. A nil s probes without parking.
//
// Wake consumes one reference of a non-nil s: the poll stores it while
// pending and releases it otherwise; a dead wake releases it here.
func (r *Receiver) Wake(s *Suspension) WakeStatus {
	r.mu.Lock()
	if r.status != PollPending {
		r.mu.Unlock()
		if s != nil {
			s.Release()
		}
		return WakeDead
	}
	status := r.fut.Poll(&r.out, s)
	r.status = status
	r.mu.Unlock()
	return wakeStatusFor(status)
}

// Status returns the stored outcome status. It is read without the lock:
// the settled status is written once by the waking thread and read by
// the resumed consumer, a single-writer-then-single-reader handoff.
func (r *Receiver) Status() PollStatus {
	return r.status
}

// Result returns the stored delivery. Reading before the receiver
// settled is a programming-contract violation: no legitimate caller
// path observes a pending receiver's slot.
func (r *Receiver) Result() Result {
	if r.status == PollPending {
		violate("result read before completion")
	}
	return r.out
}
