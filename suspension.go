// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import "code.hybscloud.com/atomix"

// Continuation is the parked work a Suspension resumes or cancels.
// Resume schedules the parked coroutine to continue; Discard cancels it
// without running it. Exactly one of the two happens, exactly once.
type Continuation interface {
	Resume()
	Discard()
}

// WakeFn dispatches one wake request for a parked suspension. It borrows
// s for the duration of the call; implementations that hand s to an API
// consuming a reference (such as Receiver.Wake or a channel send) must
// AddRef first.
type WakeFn func(s *Suspension) WakeStatus

// Suspension consume states.
const (
	suspArmed uint32 = iota
	suspConsumed
)

// Suspension is the reference-counted waker token for one parked
// coroutine. The count is shared between the object's own lifetime and
// every side that may still call Wake. The owned continuation is resumed
// or discarded exactly once over the object's lifetime; releasing the
// last reference with the continuation still armed cancels it.
type Suspension struct {
	refs  atomix.Uint32
	state atomix.Uint32
	next  Continuation
	wake  WakeFn
}

// suspensionAllocs counts constructed suspensions. Settled-on-first-poll
// awaits never construct one; see InitialSuspend.
var suspensionAllocs atomix.Uint32

// NewSuspension returns a suspension with reference count 1, owned by
// the caller, holding the continuation to resume once a wake settles.
func NewSuspension(next Continuation, wake WakeFn) *Suspension {
	suspensionAllocs.Add(1)
	s := &Suspension{next: next, wake: wake}
	s.refs.Store(1)
	return s
}

// AddRef acquires one reference and returns s. Call it before handing s
// to any side that will call Wake asynchronously: Wake consumes one
// reference.
func (s *Suspension) AddRef() *Suspension {
	s.refs.Add(1)
	return s
}

// Release drops one reference. Releasing the last reference with the
// continuation still armed cancels it: the parked coroutine is
// discarded, never resumed.
func (s *Suspension) Release() {
	n := s.refs.Add(^uint32(0))
	if n == ^uint32(0) {
		violate("suspension released below zero")
	}
	if n != 0 {
		return
	}
	if s.state.CompareAndSwap(suspArmed, suspConsumed) {
		next := s.next
		s.next = nil
		next.Discard()
	}
}

// Wake dispatches the wake callback, then releases the caller's single
// reference. A settled outcome resumes the owned continuation before
// the release.
func (s *Suspension) Wake() WakeStatus {
	st := s.WakeByRef()
	s.Release()
	return st
}

// WakeByRef dispatches the wake callback without touching the caller's
// reference. A settled outcome resumes the owned continuation.
func (s *Suspension) WakeByRef() WakeStatus {
	st := s.wake(s)
	if st.IsDone() {
		s.resume()
	}
	return st
}

// InitialSuspend performs the first poll of the watched operation under
// the guise of a suspend. If it settles immediately, the coroutine was
// logically never suspended: the continuation is forgotten without being
// scheduled (the enclosing machinery resumes inline), the creator
// reference is dropped, and false is returned. Otherwise the creator
// reference is dropped and true is returned: the suspension is truly
// parked and a later Wake resumes or cancels it.
func (s *Suspension) InitialSuspend() bool {
	st := s.wake(s)
	if st.IsDone() {
		s.forget()
		s.Release()
		return false
	}
	// Pending: a retained reference keeps the continuation armed.
	// Dead: no side retained a reference, so the release below is the
	// last one and cancels the continuation.
	s.Release()
	return true
}

// resume consumes the continuation. A second resume is lifecycle
// corruption across the boundary.
func (s *Suspension) resume() {
	if !s.state.CompareAndSwap(suspArmed, suspConsumed) {
		violate("continuation resumed twice")
	}
	next := s.next
	s.next = nil
	next.Resume()
}

// forget consumes the continuation without running it. Only the
// initial-suspend fast path uses it.
func (s *Suspension) forget() {
	if !s.state.CompareAndSwap(suspArmed, suspConsumed) {
		violate("continuation consumed during initial suspend")
	}
	s.next = nil
}
