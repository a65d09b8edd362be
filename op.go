// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import (
	"code.hybscloud.com/kont"
)

// awaitDispatcher is the structural interface for consumer-side await
// operations. awaitOn exposes the watched pollable; dispatchAwait
// decodes one settled delivery into the resumed value, or into the
// producer's reconstructed failure.
type awaitDispatcher interface {
	awaitOn() Awaitable
	dispatchAwait(status PollStatus, value any, errmsg string) (kont.Resumed, *Error)
}

// yieldDispatcher is the structural interface for producer-side yield
// operations. yieldItem exposes the item entering the backpressure
// handshake.
type yieldDispatcher interface {
	yieldItem() any
}

// Await is the effect operation for awaiting a single-value future.
// Perform(Await[T]{Future: f}) resumes with the value once the producer
// completes; a producer failure short-circuits the computation.
type Await[T any] struct {
	kont.Phantom[T]
	Future Awaitable
}

func (a Await[T]) awaitOn() Awaitable {
	return a.Future
}

func (a Await[T]) dispatchAwait(status PollStatus, value any, errmsg string) (kont.Resumed, *Error) {
	switch status {
	case PollComplete:
		if value == nil {
			var zero T
			return zero, nil
		}
		return value.(T), nil
	case PollError:
		return nil, NewError(errmsg)
	}
	violate("single-value await settled with a stream item")
	return nil, nil
}

// TryAwait is the effect operation for awaiting a single-value future
// whose failure is a value instead of a short circuit.
// Perform(TryAwait[T]{Future: f}) resumes with Right(value) on
// completion or Left(err) on a producer failure.
type TryAwait[T any] struct {
	kont.Phantom[kont.Either[*Error, T]]
	Future Awaitable
}

func (a TryAwait[T]) awaitOn() Awaitable {
	return a.Future
}

func (a TryAwait[T]) dispatchAwait(status PollStatus, value any, errmsg string) (kont.Resumed, *Error) {
	switch status {
	case PollComplete:
		if value == nil {
			var zero T
			return kont.Right[*Error](zero), nil
		}
		return kont.Right[*Error](value.(T)), nil
	case PollError:
		return kont.Left[*Error, T](NewError(errmsg)), nil
	}
	violate("single-value await settled with a stream item")
	return nil, nil
}

// AwaitNext is the effect operation for awaiting the next stream
// delivery. Perform(AwaitNext[T]{Stream: s}) resumes with Right(item)
// for an item and Left once the stream completed; a producer failure
// short-circuits the computation.
type AwaitNext[T any] struct {
	kont.Phantom[kont.Either[struct{}, T]]
	Stream Awaitable
}

func (a AwaitNext[T]) awaitOn() Awaitable {
	return a.Stream
}

func (a AwaitNext[T]) dispatchAwait(status PollStatus, value any, errmsg string) (kont.Resumed, *Error) {
	switch status {
	case PollRunning:
		if value == nil {
			var zero T
			return kont.Right[struct{}](zero), nil
		}
		return kont.Right[struct{}](value.(T)), nil
	case PollComplete:
		return kont.Left[struct{}, T](struct{}{}), nil
	case PollError:
		return nil, NewError(errmsg)
	}
	violate("invalid poll status")
	return nil, nil
}

// Yield is the effect operation for delivering one stream item from a
// producer body. Perform(Yield[T]{Value: v}) resumes once the item
// entered the one-slot handshake; the body suspends while the consumer
// has not yet accepted the previous item.
type Yield[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

func (y Yield[T]) yieldItem() any {
	return y.Value
}
