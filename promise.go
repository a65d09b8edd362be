// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"code.hybscloud.com/kont"
)

// promise is the state attached to one producer body: the channel's
// sender half, the execlet its continuations run on, and the class
// whose try/catch boundary captures its failures. The body starts
// eagerly and runs until its first park; every later segment runs as an
// execlet task on whichever thread drains next.
type promise struct {
	class  *futureClass
	exec   *Execlet
	sender *Sender
}

// promiseContinuation is the parked segment of a producer body. Resume
// never runs the segment on the waking thread: it submits to the
// execlet, so producer work stays on consumer time. Discard cancels the
// body without a terminal send; only a dropped consumer reaches it.
type promiseContinuation struct {
	p    *promise
	susp *kont.Suspension[kont.Erased]
	run  func()
}

func (c *promiseContinuation) Resume() {
	c.p.exec.Submit(c.run)
}

func (c *promiseContinuation) Discard() {
	c.p.cancel(c.susp)
}

// Start launches a producer body for this future type and returns the
// consumer half. The body runs eagerly until it completes or first
// parks on an await.
func (ft *FutureType[T]) Start(body kont.Eff[T]) *Future {
	return launch(ft.class, func() kont.Expr[kont.Erased] {
		return eraseExpr(Reify(body))
	})
}

// StartExpr launches an Expr-world producer body for this future type.
func (ft *FutureType[T]) StartExpr(body kont.Expr[T]) *Future {
	return launch(ft.class, func() kont.Expr[kont.Erased] {
		return eraseExpr(body)
	})
}

// Start launches a producer body for this stream type and returns the
// consumer half. The body delivers items with [Yield]; its return value
// is the value-less stream completion.
func (st *StreamType[T]) Start(body kont.Eff[struct{}]) *Future {
	return launch(st.class, func() kont.Expr[kont.Erased] {
		return eraseExpr(Reify(body))
	})
}

// StartExpr launches an Expr-world producer body for this stream type.
func (st *StreamType[T]) StartExpr(body kont.Expr[struct{}]) *Future {
	return launch(st.class, func() kont.Expr[kont.Erased] {
		return eraseExpr(body)
	})
}

// eraseExpr drops the body's value type so one promise driver serves
// every future type.
func eraseExpr[T any](body kont.Expr[T]) kont.Expr[kont.Erased] {
	return kont.ExprMap(body, func(v T) kont.Erased {
		return kont.Erased(v)
	})
}

// launch allocates the channel and its execlet, then runs the body
// eagerly until the first park. The body thunk runs under the failure
// boundary, so a body failing on its very first segment still settles
// the channel with an Error terminal.
func launch(class *futureClass, body func() kont.Expr[kont.Erased]) *Future {
	exec := NewExeclet()
	ch := class.vt.Channel(exec)
	p := &promise{class: class, exec: exec, sender: ch.Sender}
	p.guard(func() {
		value, susp := kont.StepExpr(body())
		p.drive(value, susp)
	})
	return ch.Future
}

// guard runs one segment of the body under the class's try/catch
// boundary; a captured panic becomes the channel's Error terminal.
func (p *promise) guard(fn func()) {
	p.class.trycatch(fn, p.fail)
}

// drive advances the body effect by effect until it completes, parks,
// or is cancelled. Yields go through the backpressure handshake with a
// waker-less probe send first, so the common uncontended yield costs no
// suspension allocation; awaits likewise probe through a fresh receiver
// before parking.
func (p *promise) drive(value kont.Erased, susp *kont.Suspension[kont.Erased]) {
	for susp != nil {
		if y, ok := susp.Op().(yieldDispatcher); ok {
			item := y.yieldItem()
			switch p.sender.Send(PollRunning, item, nil) {
			case SendSent:
				value, susp = susp.Resume(struct{}{})
				continue
			case SendFinished:
				p.cancel(susp)
				return
			}
			if p.parkYield(item, susp) {
				return
			}
			value, susp = susp.Resume(struct{}{})
			continue
		}
		if a, ok := susp.Op().(awaitDispatcher); ok {
			r := NewReceiver(a.awaitOn())
			if r.Wake(nil) == WakePending {
				if p.parkAwait(r, a, susp) {
					return
				}
			}
			out := r.Result()
			v, err := a.dispatchAwait(r.Status(), out.Value, out.ErrMsg)
			if err != nil {
				susp.Discard()
				p.fail(err.Error())
				return
			}
			value, susp = susp.Resume(v)
			continue
		}
		panic("xfut: unhandled effect in producer body")
	}
	p.complete(value)
}

// parkYield retries the Wait-ed send with a waker attached, under the
// initial-suspend protocol: false means the retry settled and the body
// continues inline; true means the body truly parked (a later wake
// resumes it) or the consumer vanished (the refcount release cancels
// it).
func (p *promise) parkYield(item kont.Erased, susp *kont.Suspension[kont.Erased]) bool {
	cont := &promiseContinuation{p: p, susp: susp}
	cont.run = func() {
		p.step(susp, struct{}{})
	}
	s := NewSuspension(cont, func(s *Suspension) WakeStatus {
		switch p.sender.Send(PollRunning, item, s.AddRef()) {
		case SendWait:
			return WakePending
		case SendSent:
			return WakeComplete
		}
		return WakeDead
	})
	return s.InitialSuspend()
}

// parkAwait registers a waker with the watched pollable, under the
// initial-suspend protocol: false means the first registration settled
// the receiver and the body continues inline.
func (p *promise) parkAwait(r *Receiver, a awaitDispatcher, susp *kont.Suspension[kont.Erased]) bool {
	cont := &promiseContinuation{p: p, susp: susp}
	cont.run = func() {
		p.settleAwait(r, a, susp)
	}
	s := NewSuspension(cont, func(s *Suspension) WakeStatus {
		return r.Wake(s.AddRef())
	})
	return s.InitialSuspend()
}

// step re-enters the body after a yield park, under a fresh guard.
func (p *promise) step(susp *kont.Suspension[kont.Erased], v kont.Resumed) {
	p.guard(func() {
		value, next := susp.Resume(v)
		p.drive(value, next)
	})
}

// settleAwait re-enters the body after an await park, under a fresh
// guard.
func (p *promise) settleAwait(r *Receiver, a awaitDispatcher, susp *kont.Suspension[kont.Erased]) {
	p.guard(func() {
		out := r.Result()
		v, err := a.dispatchAwait(r.Status(), out.Value, out.ErrMsg)
		if err != nil {
			susp.Discard()
			p.fail(err.Error())
			return
		}
		value, next := susp.Resume(v)
		p.drive(value, next)
	})
}

// complete sends the terminal Complete and tears the producer side
// down. Streams complete value-less; the body's return value is
// discarded.
func (p *promise) complete(value kont.Erased) {
	if p.class.stream {
		p.sender.Send(PollComplete, nil, nil)
	} else {
		p.sender.Send(PollComplete, value, nil)
	}
	p.sender.Drop()
	p.exec.Release()
}

// fail sends the terminal Error and tears the producer side down.
func (p *promise) fail(msg string) {
	p.sender.Send(PollError, msg, nil)
	p.sender.Drop()
	p.exec.Release()
}

// cancel tears the producer side down without a terminal send: the
// consumer half is gone, so there is nobody to deliver to.
func (p *promise) cancel(susp *kont.Suspension[kont.Erased]) {
	susp.Discard()
	p.sender.Drop()
	p.exec.Release()
}
