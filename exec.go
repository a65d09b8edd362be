// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"code.hybscloud.com/kont"
)

// awaitHandler implements kont.Handler for consumer-side await effects.
// Waits past pending polls, converting the non-blocking handshake into
// blocking evaluation for Exec/ExecExpr.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type awaitHandler[R any] struct{}

// Dispatch implements kont.Handler via structural interface assertion.
// Waits past pending polls with adaptive backoff.
func (awaitHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	aop, ok := op.(awaitDispatcher)
	if !ok {
		panic("xfut: unhandled effect in awaitHandler")
	}
	st, out := blockOn(aop.awaitOn())
	v, err := aop.dispatchAwait(st, out.Value, out.ErrMsg)
	if err != nil {
		panic(err)
	}
	return v, true
}

// Exec runs a Cont-world consumer computation, blocking at each await
// until the awaited producer settles. Blocks via adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels.
// A producer failure reaching a plain [Await] panics with the [*Error];
// route failures through [TryAwait] or [ExecError] to handle them.
func Exec[R any](comp kont.Eff[R]) R {
	return kont.Handle(comp, awaitHandler[R]{})
}

// ExecExpr runs an Expr-world consumer computation, blocking at each
// await until the awaited producer settles. Blocks via adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels.
func ExecExpr[R any](comp kont.Expr[R]) R {
	return kont.HandleExpr(comp, awaitHandler[R]{})
}
