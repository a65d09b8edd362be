// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Awaitable is the consumer-side view of a pollable foreign value:
// anything exposing the poll half of the handshake. [*Future] is the
// in-package implementation; embedders supply their own to bridge
// futures produced by another runtime.
type Awaitable interface {
	// Poll reports progress, writing a delivery into out on any status
	// other than Pending. It consumes one reference of a non-nil waker:
	// stored while pending, released otherwise.
	Poll(out *Result, waker *Suspension) PollStatus
}

// Result is the slot a poll writes its delivery into: the value for
// Complete and Running, the message for Error. The message is a copy;
// no ownership is shared across the boundary.
type Result struct {
	Value  any
	ErrMsg string
}

// blockFlag states.
const (
	blockParked uint32 = iota
	blockResumed
	blockCancelled
)

// blockFlag is the continuation of a thread parked in blockOn: resuming
// or discarding it flips the flag the parked thread spins on.
type blockFlag struct {
	state atomix.Uint32
}

func (f *blockFlag) Resume() {
	f.state.Store(blockResumed)
}

func (f *blockFlag) Discard() {
	f.state.Store(blockCancelled)
}

// blockOn waits for one settled delivery from fut on the calling
// thread. A first probe poll settles synchronous futures with zero
// suspension allocations; otherwise the thread parks on an adaptive
// backoff until a wake settles the receiver.
func blockOn(fut Awaitable) (PollStatus, Result) {
	r := NewReceiver(fut)
	if st := r.Wake(nil); st != WakePending {
		return r.Status(), r.Result()
	}
	flag := &blockFlag{}
	s := NewSuspension(flag, func(s *Suspension) WakeStatus {
		return r.Wake(s.AddRef())
	})
	if s.InitialSuspend() {
		var bo iox.Backoff
		for flag.state.Load() == blockParked {
			bo.Wait()
		}
		if flag.state.Load() == blockCancelled {
			violate("await cancelled while parked")
		}
	}
	return r.Status(), r.Result()
}

// Block waits for a single-value future and returns its value, or the
// producer's failure reconstructed as a [*Error].
func Block[T any](fut Awaitable) (T, error) {
	st, out := blockOn(fut)
	var zero T
	switch st {
	case PollComplete:
		if out.Value == nil {
			return zero, nil
		}
		return out.Value.(T), nil
	case PollError:
		return zero, NewError(out.ErrMsg)
	}
	violate("single-value await settled with a stream item")
	return zero, nil
}

// Next waits for the next stream delivery. It returns (item, true, nil)
// for an item, (zero, false, nil) once the stream completed, and the
// producer's failure as the error.
func Next[T any](stream Awaitable) (T, bool, error) {
	st, out := blockOn(stream)
	var zero T
	switch st {
	case PollRunning:
		if out.Value == nil {
			return zero, true, nil
		}
		return out.Value.(T), true, nil
	case PollComplete:
		return zero, false, nil
	}
	return zero, false, NewError(out.ErrMsg)
}

// Collect drains a stream into a slice, preserving production order.
// On a producer failure it returns the items delivered so far along
// with the error.
func Collect[T any](stream Awaitable) ([]T, error) {
	var items []T
	for {
		item, ok, err := Next[T](stream)
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}
