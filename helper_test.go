// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut_test

import (
	"sync"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/xfut"
)

// Shared type descriptors. One descriptor serves every channel of its
// type; tests needing a custom failure boundary define their own.
var (
	intFuture = xfut.DefineFuture[int]()
	strFuture = xfut.DefineFuture[string]()
	intStream = xfut.DefineStream[int]()
	strStream = xfut.DefineStream[string]()
)

// execExpr drives a consumer computation to completion via Step+Advance.
// Retries on iox.ErrWouldBlock (producer not settled yet); each Advance
// probe drains the awaited channel's execlet, so the producer progresses
// across retries. Used by stepping tests to exercise the non-blocking
// path.
func execExpr[R any](comp kont.Expr[R]) R {
	result, susp := xfut.Step[R](comp)
	for susp != nil {
		var err error
		result, susp, err = xfut.Advance(susp)
		if err != nil {
			continue
		}
	}
	return result
}

// countingCont counts continuation consumption for suspension lifecycle
// assertions.
type countingCont struct {
	resumed   int
	discarded int
}

func (c *countingCont) Resume()  { c.resumed++ }
func (c *countingCont) Discard() { c.discarded++ }

// manualSource is a hand-driven pollable standing in for a future
// produced by another runtime: no channel, no execlet, just the poll
// half of the handshake over a mutex.
type manualSource struct {
	mu     sync.Mutex
	status xfut.PollStatus
	value  any
	errmsg string
	waker  *xfut.Suspension
	polls  int
}

func (m *manualSource) Poll(out *xfut.Result, waker *xfut.Suspension) xfut.PollStatus {
	m.mu.Lock()
	m.polls++
	st := m.status
	if st == xfut.PollPending {
		displaced := m.waker
		m.waker = waker
		m.mu.Unlock()
		if displaced != nil {
			displaced.Release()
		}
		return st
	}
	if st == xfut.PollError {
		out.ErrMsg = m.errmsg
	} else {
		out.Value = m.value
	}
	m.mu.Unlock()
	if waker != nil {
		waker.Release()
	}
	return st
}

// settle stores the outcome and wakes the parked consumer, consuming
// the stored waker reference.
func (m *manualSource) settle(status xfut.PollStatus, value any, errmsg string) {
	m.mu.Lock()
	m.status = status
	m.value = value
	m.errmsg = errmsg
	w := m.waker
	m.waker = nil
	m.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}

// pollCount returns how many polls reached the source.
func (m *manualSource) pollCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.polls
}
