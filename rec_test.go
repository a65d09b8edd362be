// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut_test

import (
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/xfut"
)

// TestLoopAwaitsPerIteration launches a fresh producer every iteration
// and folds the awaited values.
func TestLoopAwaitsPerIteration(t *testing.T) {
	skipRace(t)
	type state struct {
		i   int
		sum int
	}
	v := xfut.Exec(xfut.Loop(state{}, func(s state) kont.Eff[kont.Either[state, int]] {
		if s.i == 4 {
			return kont.Pure(kont.Right[state](s.sum))
		}
		f := intFuture.Start(kont.Pure(s.i * 10))
		return xfut.AwaitBind[int](f, func(n int) kont.Eff[kont.Either[state, int]] {
			return kont.Pure(kont.Left[state, int](state{i: s.i + 1, sum: s.sum + n}))
		})
	}))
	if v != 60 {
		t.Fatalf("loop got %d, want 60", v)
	}
}

// TestFoldSumsStream folds a finite stream into a running sum.
func TestFoldSumsStream(t *testing.T) {
	skipRace(t)
	f := intStream.Start(xfut.YieldAll([]int{1, 2, 3, 4, 5}, kont.Pure(struct{}{})))
	v := xfut.Exec(xfut.Fold(f, 0, func(sum, n int) int {
		return sum + n
	}))
	if v != 15 {
		t.Fatalf("fold got %d, want 15", v)
	}
}

// TestExprFoldConcatenatesStream folds in the Expr world.
func TestExprFoldConcatenatesStream(t *testing.T) {
	skipRace(t)
	f := strStream.StartExpr(
		xfut.ExprYieldThen("a",
			xfut.ExprYieldThen("b",
				xfut.ExprYieldThen("c", kont.ExprReturn(struct{}{})))))
	v := xfut.ExecExpr(xfut.ExprFold(f, "", func(acc, s string) string {
		return acc + s
	}))
	if v != "abc" {
		t.Fatalf("fold got %q, want %q", v, "abc")
	}
}

// TestExprLoopImmediateReturn exercises the fused fast path where the
// step settles without suspending.
func TestExprLoopImmediateReturn(t *testing.T) {
	v, susp := xfut.Step[string](xfut.ExprLoop(3, func(i int) kont.Expr[kont.Either[int, string]] {
		if i == 0 {
			return kont.ExprReturn(kont.Right[int]("done"))
		}
		return kont.ExprReturn(kont.Left[int, string](i - 1))
	}))
	if susp != nil {
		t.Fatal("pure loop suspended")
	}
	if v != "done" {
		t.Fatalf("loop got %q, want %q", v, "done")
	}
}

// TestExprLoopDeepIteration threads state through many suspending
// iterations without growing the frame chain.
func TestExprLoopDeepIteration(t *testing.T) {
	skipRace(t)
	const rounds = 512
	f := intStream.StartExpr(xfut.ExprLoop(0, func(i int) kont.Expr[kont.Either[int, struct{}]] {
		if i >= rounds {
			return kont.ExprReturn(kont.Right[int](struct{}{}))
		}
		return xfut.ExprYieldThen(i, kont.ExprReturn(kont.Left[int, struct{}](i+1)))
	}))

	count := 0
	for {
		_, ok, err := xfut.Next[int](f)
		if err != nil {
			t.Fatalf("Next error %v, want nil", err)
		}
		if !ok {
			break
		}
		count++
	}
	if count != rounds {
		t.Fatalf("delivered %d items, want %d", count, rounds)
	}
}
