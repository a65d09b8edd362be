// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut_test

import (
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/xfut"
)

func TestStepSyncCompletion(t *testing.T) {
	v, susp := xfut.Step[int](kont.ExprReturn(5))
	if susp != nil {
		t.Fatalf("Step suspended on a pure computation")
	}
	if v != 5 {
		t.Fatalf("Step got %d, want 5", v)
	}
}

// TestAdvanceWouldBlock checks a pending await reports ErrWouldBlock
// and hands the same suspension back for retry.
func TestAdvanceWouldBlock(t *testing.T) {
	skipRace(t)
	exec := xfut.NewExeclet()
	ch := intFuture.Vtable().Channel(exec)

	comp := xfut.ExprAwaitBind[int](ch.Future, func(n int) kont.Expr[int] {
		return kont.ExprReturn(n + 1)
	})
	_, susp := xfut.Step[int](comp)
	if susp == nil {
		t.Fatal("Step completed, want suspension on pending await")
	}

	_, retry, err := xfut.Advance(susp)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("Advance error %v, want would-block", err)
	}
	if retry != susp {
		t.Fatal("would-block Advance consumed the suspension")
	}

	ch.Sender.Send(xfut.PollComplete, 4, nil)
	ch.Sender.Drop()

	v, done, err := xfut.Advance(retry)
	if err != nil || done != nil {
		t.Fatalf("Advance after settle: susp %v err %v, want completion", done, err)
	}
	if v != 5 {
		t.Fatalf("Advance got %d, want 5", v)
	}

	ch.Future.Drop()
	exec.Release()
}

// TestAdvanceProducerFailure checks a failed await consumes the
// suspension and surfaces the reconstructed error.
func TestAdvanceProducerFailure(t *testing.T) {
	skipRace(t)
	exec := xfut.NewExeclet()
	ch := intFuture.Vtable().Channel(exec)
	ch.Sender.Send(xfut.PollError, "boom", nil)
	ch.Sender.Drop()

	comp := xfut.ExprAwaitBind[int](ch.Future, func(n int) kont.Expr[int] {
		return kont.ExprReturn(n)
	})
	_, susp := xfut.Step[int](comp)
	if susp == nil {
		t.Fatal("Step completed, want suspension")
	}
	_, done, err := xfut.Advance(susp)
	if done != nil {
		t.Fatal("failed Advance left the suspension unconsumed")
	}
	e, ok := err.(*xfut.Error)
	if !ok {
		t.Fatalf("Advance error %v, want *Error", err)
	}
	if e.Error() != "boom" {
		t.Fatalf("Advance error %q, want %q", e.Error(), "boom")
	}

	ch.Future.Drop()
	exec.Release()
}

// TestAdvanceDrivesProducer parks a producer behind a manual source and
// checks its resumed segment runs inside the consumer's Advance probe:
// producer progress rides each poll.
func TestAdvanceDrivesProducer(t *testing.T) {
	skipRace(t)
	exec := xfut.NewExeclet()
	src := intFuture.Vtable().Channel(exec)

	outer := intFuture.Start(xfut.AwaitBind[int](src.Future, func(n int) kont.Eff[int] {
		return kont.Pure(n + 1)
	}))

	_, susp := xfut.Step[int](xfut.ExprAwaitBind[int](outer, func(n int) kont.Expr[int] {
		return kont.ExprReturn(n * 2)
	}))
	if susp == nil {
		t.Fatal("Step completed, want suspension on pending await")
	}
	if _, _, err := xfut.Advance(susp); !iox.IsWouldBlock(err) {
		t.Fatalf("Advance on parked producer: error %v, want would-block", err)
	}

	// Settling the source schedules the producer's continuation; the
	// next probe drains it and observes the completed chain.
	src.Sender.Send(xfut.PollComplete, 20, nil)
	src.Sender.Drop()

	v, done, err := xfut.Advance(susp)
	if err != nil || done != nil {
		t.Fatalf("Advance after settle: susp %v err %v, want completion", done, err)
	}
	if v != 42 {
		t.Fatalf("stepped consumer got %d, want 42", v)
	}

	src.Future.Drop()
	exec.Release()
}

func TestAdvanceNonAwaitPanics(t *testing.T) {
	_, susp := xfut.Step[struct{}](xfut.ExprYieldThen(1, kont.ExprReturn(struct{}{})))
	if susp == nil {
		t.Fatal("Step completed, want suspension on yield")
	}

	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("recovered %v, want string panic", r)
		}
		if msg != "xfut: unhandled effect in Advance" {
			t.Fatalf("panic %q, want %q", msg, "xfut: unhandled effect in Advance")
		}
	}()
	xfut.Advance(susp)
}
