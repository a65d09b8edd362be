// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut_test

import (
	"reflect"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/xfut"
)

// TestRunInterleavesConsumers runs a future consumer and a stream
// consumer on one goroutine; the stream side needs many polls, so both
// sides take turns until each completes.
func TestRunInterleavesConsumers(t *testing.T) {
	skipRace(t)
	f := intFuture.Start(kont.Pure(21))
	s := intStream.Start(xfut.YieldAll([]int{1, 2, 3, 4}, kont.Pure(struct{}{})))

	a := xfut.AwaitBind[int](f, func(n int) kont.Eff[int] {
		return kont.Pure(n * 2)
	})
	b := xfut.Loop([]int(nil), func(acc []int) kont.Eff[kont.Either[[]int, []int]] {
		return xfut.NextBranch(s,
			func(n int) kont.Eff[kont.Either[[]int, []int]] {
				return kont.Pure(kont.Left[[]int, []int](append(acc, n)))
			},
			func() kont.Eff[kont.Either[[]int, []int]] {
				return kont.Pure(kont.Right[[]int](acc))
			},
		)
	})

	va, vb := xfut.Run(a, b)
	if va != 42 {
		t.Fatalf("future consumer got %d, want 42", va)
	}
	if want := []int{1, 2, 3, 4}; !reflect.DeepEqual(vb, want) {
		t.Fatalf("stream consumer got %v, want %v", vb, want)
	}
}

func TestRunExprInterleavesConsumers(t *testing.T) {
	skipRace(t)
	fa := intFuture.Start(kont.Pure(1))
	fb := intFuture.Start(kont.Pure(2))

	a := xfut.ExprAwaitBind[int](fa, func(n int) kont.Expr[int] {
		return kont.ExprReturn(n + 10)
	})
	b := xfut.ExprAwaitBind[int](fb, func(n int) kont.Expr[int] {
		return kont.ExprReturn(n + 20)
	})

	va, vb := xfut.RunExpr(a, b)
	if va != 11 || vb != 22 {
		t.Fatalf("RunExpr got (%d, %d), want (11, 22)", va, vb)
	}
}

// TestRunMixedSettleOrder parks one side behind a manual source that
// settles only after the other side finishes its stream: the interleave
// must not starve either side.
func TestRunMixedSettleOrder(t *testing.T) {
	skipRace(t)
	exec := xfut.NewExeclet()
	src := strFuture.Vtable().Channel(exec)
	s := intStream.Start(xfut.YieldAll([]int{5, 6}, kont.Pure(struct{}{})))

	a := xfut.AwaitBind[string](src.Future, func(v string) kont.Eff[string] {
		return kont.Pure(v + "!")
	})
	b := xfut.Loop(0, func(acc int) kont.Eff[kont.Either[int, int]] {
		return xfut.NextBranch(s,
			func(n int) kont.Eff[kont.Either[int, int]] {
				if acc+n == 11 {
					// Last item observed: release the other side.
					src.Sender.Send(xfut.PollComplete, "done", nil)
				}
				return kont.Pure(kont.Left[int, int](acc + n))
			},
			func() kont.Eff[kont.Either[int, int]] {
				return kont.Pure(kont.Right[int](acc))
			},
		)
	})

	va, vb := xfut.Run(a, b)
	if va != "done!" {
		t.Fatalf("parked consumer got %q, want %q", va, "done!")
	}
	if vb != 11 {
		t.Fatalf("stream consumer got %d, want 11", vb)
	}

	src.Sender.Drop()
	src.Future.Drop()
	exec.Release()
}
