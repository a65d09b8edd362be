// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"code.hybscloud.com/kont"
)

// AwaitBind awaits a single-value future and passes its value to f.
// Fuses Perform(Await[T]) + Bind.
func AwaitBind[T, B any](fut Awaitable, f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Await[T]{Future: fut}), f)
}

// AwaitThen awaits a single-value future, discards its value, and
// continues with next. Fuses Perform(Await[T]) + Then.
func AwaitThen[T, B any](fut Awaitable, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Await[T]{Future: fut}), next)
}

// TryAwaitBind awaits a single-value future and passes Right(value) or
// Left(err) to f. Fuses Perform(TryAwait[T]) + Bind.
func TryAwaitBind[T, B any](fut Awaitable, f func(kont.Either[*Error, T]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(TryAwait[T]{Future: fut}), f)
}

// NextBranch awaits the next stream delivery and calls onItem with the
// item, or onClose once the stream completed. Fuses
// Perform(AwaitNext[T]) + Bind + Either branch.
func NextBranch[T, A any](stream Awaitable, onItem func(T) kont.Eff[A], onClose func() kont.Eff[A]) kont.Eff[A] {
	return kont.Bind(kont.Perform(AwaitNext[T]{Stream: stream}), func(e kont.Either[struct{}, T]) kont.Eff[A] {
		if item, ok := e.GetRight(); ok {
			return onItem(item)
		}
		return onClose()
	})
}

// YieldThen delivers one stream item and then continues with next.
// Fuses Perform(Yield[T]) + Then.
func YieldThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield[T]{Value: v}), next)
}

// YieldAll delivers each item in order and then continues with next.
func YieldAll[T, B any](items []T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(Loop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
		if i >= len(items) {
			return kont.Pure(kont.Right[int](struct{}{}))
		}
		return YieldThen(items[i], kont.Pure(kont.Left[int, struct{}](i+1)))
	}), next)
}
