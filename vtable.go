// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

// Vtable is the erased boundary ABI for one future or stream type: the
// three entry points a foreign producer runtime drives without knowing
// the value type. Status and result codes are the wire values of
// [PollStatus] and [SendResult].
type Vtable struct {
	// Channel constructs a linked future/sender pair whose producer
	// continuations run on exec.
	Channel func(exec *Execlet) Channel
	// SenderSend delivers one item or terminal into the channel.
	SenderSend func(s *Sender, status uint32, value any, waker *Suspension) uint32
	// FuturePoll asks the channel for progress.
	FuturePoll func(f *Future, out *Result, waker *Suspension) uint32
}

// futureClass is the shared descriptor behind every channel of one
// defined type: the erased ABI, the stream/future flavor, the payload
// check recovering the erased type, and the producer failure boundary.
type futureClass struct {
	vt       Vtable
	stream   bool
	trycatch TryCatch
	check    func(status PollStatus, value any)
}

// FutureType describes a single-value future type carrying T. Define
// one per exchanged type, typically in a package-level var.
type FutureType[T any] struct {
	class *futureClass
}

// StreamType describes a multi-value stream type carrying items of T.
type StreamType[T any] struct {
	class *futureClass
}

// DefineFuture defines a future type carrying T.
func DefineFuture[T any](opts ...Option) *FutureType[T] {
	return &FutureType[T]{class: defineClass[T](false, opts)}
}

// DefineStream defines a stream type carrying items of T.
func DefineStream[T any](opts ...Option) *StreamType[T] {
	return &StreamType[T]{class: defineClass[T](true, opts)}
}

// Vtable returns the erased boundary ABI for this future type.
func (ft *FutureType[T]) Vtable() *Vtable {
	return &ft.class.vt
}

// Vtable returns the erased boundary ABI for this stream type.
func (st *StreamType[T]) Vtable() *Vtable {
	return &st.class.vt
}

func defineClass[T any](stream bool, opts []Option) *futureClass {
	c := &futureClass{
		stream:   stream,
		trycatch: defaultTryCatch,
		check:    payloadCheck[T](stream),
	}
	c.vt = Vtable{
		Channel: func(exec *Execlet) Channel {
			return newChannel(c, exec)
		},
		SenderSend: func(s *Sender, status uint32, value any, waker *Suspension) uint32 {
			return uint32(s.Send(PollStatus(status), value, waker))
		},
		FuturePoll: func(f *Future, out *Result, waker *Suspension) uint32 {
			return uint32(f.Poll(out, waker))
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// payloadCheck recovers the erased payload type at the send boundary.
// nil stands for the zero value and is always accepted; a non-nil
// payload of the wrong dynamic type is lifecycle corruption, not a
// producer failure.
func payloadCheck[T any](stream bool) func(status PollStatus, value any) {
	return func(status PollStatus, value any) {
		if value == nil {
			if status == PollError {
				violate("error send without a message")
			}
			return
		}
		switch status {
		case PollRunning:
			if _, ok := value.(T); !ok {
				violate("stream item payload has the wrong type")
			}
		case PollComplete:
			if stream {
				violate("stream completion carries a payload")
			}
			if _, ok := value.(T); !ok {
				violate("future result payload has the wrong type")
			}
		case PollError:
			if _, ok := value.(string); !ok {
				violate("error payload must be a message string")
			}
		}
	}
}
