// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Step evaluates a consumer computation until the first await
// suspension. Returns (result, nil) on completion, or (zero,
// suspension) if an await is outstanding.
func Step[R any](comp kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(comp)
}

// Advance probes the suspended await once, without parking a waker.
// The probe drains the awaited channel's execlet, so producer work
// rides each Advance call.
//
// On a settled delivery the suspension is consumed and the computation
// advances to the next await or completion. On iox.ErrWouldBlock the
// suspension is unconsumed and may be retried once the producer makes
// progress. A producer failure consumes the suspension and returns the
// [*Error]; iox.IsWouldBlock tells the retryable case apart.
func Advance[R any](susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	aop, ok := susp.Op().(awaitDispatcher)
	if !ok {
		panic("xfut: unhandled effect in Advance")
	}
	var out Result
	status := aop.awaitOn().Poll(&out, nil)
	if status == PollPending {
		var zero R
		return zero, susp, iox.ErrWouldBlock
	}
	v, err := aop.dispatchAwait(status, out.Value, out.ErrMsg)
	if err != nil {
		susp.Discard()
		var zero R
		return zero, nil, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
