// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
)

// execletCapacity bounds the pending-task queue of one execlet. A
// producer coroutine has at most one in-flight continuation, so the
// queue stays near length one; the headroom absorbs wake bursts around
// a handoff.
const execletCapacity = 4

// Execlet is the single-task run queue attached to one channel. Producer
// continuations never run on their own thread: they are submitted here
// and drained by whichever consumer thread polls the channel next, so
// all producer progress happens on consumer time. One producer
// submits and one consumer drains at a time; concurrent polls of the
// same future must be externally serialized, as must sends.
type Execlet struct {
	refs     atomix.Uint32
	draining atomix.Uint32
	waker    atomic.Pointer[Suspension]
	tasks    lfq.SPSC[func()]
}

// NewExeclet returns an execlet with reference count 1, owned by the
// channel that created it.
func NewExeclet() *Execlet {
	e := &Execlet{}
	e.refs.Store(1)
	e.tasks.Init(execletCapacity)
	return e
}

// AddRef acquires one reference and returns e.
func (e *Execlet) AddRef() *Execlet {
	e.refs.Add(1)
	return e
}

// Release drops one reference. The last release discards any parked
// consumer waker along with the queued tasks: nobody is left to run
// them.
func (e *Execlet) Release() {
	n := e.refs.Add(^uint32(0))
	if n == ^uint32(0) {
		violate("execlet released below zero")
	}
	if n != 0 {
		return
	}
	if w := e.waker.Swap(nil); w != nil {
		w.Release()
	}
}

// Submit enqueues one task and wakes the registered consumer so a drain
// happens even if no poll is otherwise due. Each task holds one execlet
// reference until it has run. A submit landing while a drain is in
// progress skips the wake: the drain's post-clear re-check picks the
// task up.
func (e *Execlet) Submit(task func()) {
	e.AddRef()
	if err := e.tasks.Enqueue(&task); err != nil {
		violate("execlet queue overflow")
	}
	if e.draining.Load() != 0 {
		return
	}
	if w := e.waker.Swap(nil); w != nil {
		w.Wake()
	}
}

// drain runs queued tasks until the queue stays empty. The draining flag
// suppresses consumer wakes from tasks submitted mid-drain; after
// clearing it, one more dequeue closes the window against a submit that
// saw the flag still set.
func (e *Execlet) drain() {
	for {
		e.draining.Store(1)
		for {
			task, err := e.tasks.Dequeue()
			if err != nil {
				break
			}
			task()
			e.Release()
		}
		e.draining.Store(0)
		task, err := e.tasks.Dequeue()
		if err != nil {
			return
		}
		task()
		e.Release()
	}
}

// registerWaker parks the consumer-side suspension to be woken by the
// next Submit, consuming one reference to s. The displaced waker is
// returned for the caller to release outside any state lock.
func (e *Execlet) registerWaker(s *Suspension) *Suspension {
	return e.waker.Swap(s)
}
