// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated return frame to eliminate heap escapes when boxing into
// kont.Frame during Expr-world construction.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprYieldThen delivers one stream item and then continues with next.
// Fuses ExprPerform(Yield[T]) + ExprThen.
func ExprYieldThen[T, B any](v T, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Yield[T]{Value: v}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func awaitBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(T) kont.Expr[B])
	result := f(current.(T))
	return kont.Erased(result.Value), result.Frame
}

// ExprAwaitBind awaits a single-value future and passes its value to f.
// Fuses ExprPerform(Await[T]) + ExprBind.
func ExprAwaitBind[T, B any](fut Awaitable, f func(T) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = awaitBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Await[T]{Future: fut}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

func tryAwaitBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(kont.Either[*Error, T]) kont.Expr[B])
	result := f(current.(kont.Either[*Error, T]))
	return kont.Erased(result.Value), result.Frame
}

// ExprTryAwaitBind awaits a single-value future and passes Right(value)
// or Left(err) to f. Fuses ExprPerform(TryAwait[T]) + ExprBind.
func ExprTryAwaitBind[T, B any](fut Awaitable, f func(kont.Either[*Error, T]) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = tryAwaitBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = TryAwait[T]{Future: fut}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

func nextBranchUnwind[T, A any](data, data2, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	onItem := data.(func(T) kont.Expr[A])
	onClose := data2.(func() kont.Expr[A])
	e := current.(kont.Either[struct{}, T])
	var result kont.Expr[A]
	if item, ok := e.GetRight(); ok {
		result = onItem(item)
	} else {
		result = onClose()
	}
	return kont.Erased(result.Value), result.Frame
}

// ExprNextBranch awaits the next stream delivery and calls onItem or
// onClose. Fuses ExprPerform(AwaitNext[T]) + ExprBind + Either branch.
func ExprNextBranch[T, A any](stream Awaitable, onItem func(T) kont.Expr[A], onClose func() kont.Expr[A]) kont.Expr[A] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = onItem
	bf.Data2 = onClose
	bf.Unwind = nextBranchUnwind[T, A]
	ef := kont.AcquireEffectFrame()
	ef.Operation = AwaitNext[T]{Stream: stream}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[A](ef)
}
