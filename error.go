// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"fmt"

	"code.hybscloud.com/kont"
)

// Error is a producer-side failure reconstructed on the consumer side.
// It carries exactly the message captured by the producer's try/catch
// boundary; the text is copied across the runtime boundary with no
// shared ownership of the buffer.
type Error struct {
	msg string
}

// NewError returns an Error carrying msg.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.msg
}

// Violation is the panic value raised on cross-runtime contract
// breaches: a repeated terminal send, a result read before completion, a
// continuation resumed twice. These indicate lifecycle corruption across
// the boundary and are not convertible to producer failures; the default
// try/catch boundary re-raises them.
type Violation string

// Error implements the error interface.
func (v Violation) Error() string {
	return string(v)
}

// violate panics with a Violation carrying the package prefix.
func violate(msg string) {
	panic(Violation("xfut: " + msg))
}

// TryCatch is the producer-side failure capture boundary. run executes
// one step of a producer body; if the step panics, the boundary renders
// the panic value as a message and reports it through fail. It is the
// only customization point on the producer path; see WithTryCatch.
type TryCatch func(run func(), fail func(msg string))

// defaultTryCatch recovers any panic except Violation, which is
// re-raised: contract breaches abort instead of traveling as failures.
func defaultTryCatch(run func(), fail func(msg string)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if v, ok := r.(Violation); ok {
			panic(v)
		}
		fail(panicMessage(r))
	}()
	run()
}

// panicMessage renders a recovered panic value as the error payload.
func panicMessage(r any) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	}
	return fmt.Sprint(r)
}

// awaitErrorHandler handles await effects with failure short-circuiting.
// Awaits block past PollPending via the receiver/waker machinery; a
// failed await short-circuits to Left instead of resuming.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type awaitErrorHandler[R any] struct{}

// Dispatch implements kont.Handler via structural interface assertion.
func (awaitErrorHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	aop, ok := op.(awaitDispatcher)
	if !ok {
		panic("xfut: unhandled effect in awaitErrorHandler")
	}
	st, out := blockOn(aop.awaitOn())
	v, err := aop.dispatchAwait(st, out.Value, out.ErrMsg)
	if err != nil {
		return kont.Left[*Error, R](err), false
	}
	return v, true
}

// ExecError runs a consumer computation, blocking at each await
// boundary. Returns Either[*Error, R] — Right on success, Left carrying
// the first failed await. Blocks on pending awaits via adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels.
func ExecError[R any](comp kont.Eff[R]) kont.Either[*Error, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[*Error, R]](comp, func(r R) kont.Either[*Error, R] {
		return kont.Right[*Error, R](r)
	})
	return kont.Handle(wrapped, awaitErrorHandler[R]{})
}

// ExecErrorExpr runs an Expr-world consumer computation with failure
// short-circuiting. Returns Either[*Error, R] — Right on success, Left
// carrying the first failed await. Blocks on pending awaits via adaptive
// backoff (iox.Backoff), without spawning goroutines or creating
// channels.
func ExecErrorExpr[R any](comp kont.Expr[R]) kont.Either[*Error, R] {
	wrapped := kont.ExprMap(comp, func(r R) kont.Either[*Error, R] {
		return kont.Right[*Error, R](r)
	})
	return kont.HandleExpr(wrapped, awaitErrorHandler[R]{})
}
