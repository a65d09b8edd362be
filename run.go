// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run interleaves two Cont-world consumer computations on the calling
// goroutine and returns both results, backing off adaptively
// (iox.Backoff) when neither side can make progress. Does not spawn
// goroutines or create channels. A producer failure reaching a plain
// [Await] in either computation panics with the [*Error].
func Run[A, B any](a kont.Eff[A], b kont.Eff[B]) (A, B) {
	return RunExpr(Reify(a), Reify(b))
}

// RunExpr interleaves two Expr-world consumer computations on the
// calling goroutine and returns both results, backing off adaptively
// (iox.Backoff) when neither side can make progress. Does not spawn
// goroutines or create channels.
func RunExpr[A, B any](a kont.Expr[A], b kont.Expr[B]) (A, B) {
	resultA, suspA := Step[A](a)
	resultB, suspB := Step[B](b)
	var bo iox.Backoff

	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance(suspA)
			if err == nil {
				progress = true
			} else if !iox.IsWouldBlock(err) {
				panic(err)
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance(suspB)
			if err == nil {
				progress = true
			} else if !iox.IsWouldBlock(err) {
				panic(err)
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultA, resultB
}
