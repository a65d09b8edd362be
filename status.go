// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

// PollStatus is the status code a poll reports to the consumer side.
// The numeric values cross the runtime boundary and must match the
// peer runtime's enumeration bit-for-bit.
type PollStatus uint32

const (
	// PollPending: no value yet; the supplied waker is invoked later.
	PollPending PollStatus = 0
	// PollComplete: terminal value delivered (value-less for streams).
	PollComplete PollStatus = 1
	// PollError: terminal error message delivered.
	PollError PollStatus = 2
	// PollRunning: one stream item delivered; poll again for more.
	PollRunning PollStatus = 3
)

// IsTerminal reports whether the status closes the channel.
// Running delivers an item but keeps the stream open.
func (s PollStatus) IsTerminal() bool {
	return s == PollComplete || s == PollError
}

// WakeStatus is the status a Receiver reports to the waker that woke it.
// WakeDead signals the consumer-side state is gone or already settled:
// stop trying to deliver.
type WakeStatus uint32

const (
	WakePending WakeStatus = iota
	WakeComplete
	WakeError
	WakeDead
)

// IsDone reports whether the woken wait settled with a consumable
// outcome. Dead is not done: the parked continuation is never resumed.
func (s WakeStatus) IsDone() bool {
	return s == WakeComplete || s == WakeError
}

// wakeStatusFor maps a poll outcome onto the waker vocabulary.
// Running settles the wait the same way Complete does; the awaiter reads
// the receiver's stored status to tell an item from stream close.
func wakeStatusFor(s PollStatus) WakeStatus {
	switch s {
	case PollPending:
		return WakePending
	case PollComplete, PollRunning:
		return WakeComplete
	case PollError:
		return WakeError
	}
	violate("invalid poll status")
	return WakeDead
}

// SendResult is the producer-side outcome of a send: the three-way
// backpressure handshake for streams, and the delivery acknowledgement
// for terminal sends. The numeric values cross the runtime boundary.
type SendResult uint32

const (
	// SendWait: no consumer ready; the value is retained and the
	// registered waker is invoked once the slot frees up.
	SendWait SendResult = 0
	// SendSent: the value was accepted; produce the next one.
	SendSent SendResult = 1
	// SendFinished: the consumer handle is gone; stop producing.
	SendFinished SendResult = 2
)
