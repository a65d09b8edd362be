// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

import "sync"

// Channel pairs the consumer-visible future handle with the
// producer-visible sender handle for one asynchronous operation.
// Exactly one live sender and one live future exist per channel; neither
// half is duplicated or reused.
type Channel struct {
	Future *Future
	Sender *Sender
}

// Future is the consumer half of a channel. Polls on one future must be
// externally serialized; the await machinery serializes them through a
// [Receiver].
type Future struct {
	st *channelState
}

// Sender is the producer half of a channel. Sends on one sender must be
// externally serialized; the producer machinery issues at most one send
// at a time.
type Sender struct {
	st *channelState
}

// channelState is the shared state machine behind both halves. The
// mutex orders state transitions only: wake dispatch and reference
// releases happen strictly after unlock, so a waker callback can
// re-enter the channel on a fresh lock acquisition.
type channelState struct {
	mu    sync.Mutex
	class *futureClass
	exec  *Execlet

	// One-item rendezvous slot for stream delivery.
	slot     any
	slotFull bool

	// Terminal delivery, written at most once.
	terminal PollStatus
	result   any
	errmsg   string

	consumerW *Suspension
	producerW *Suspension

	futureDropped bool
	senderDropped bool
	inPoll        bool

	serial Serial
}

// channelPair holds both halves and the shared state in a single
// allocation.
type channelPair struct {
	f  Future
	s  Sender
	st channelState
}

// newChannel links a future/sender pair to class and exec. The channel
// holds one execlet reference until both halves are dropped.
func newChannel(class *futureClass, exec *Execlet) Channel {
	pair := &channelPair{}
	pair.st.class = class
	pair.st.exec = exec.AddRef()
	pair.st.terminal = PollPending
	pair.st.serial = nextSerial()
	pair.f.st = &pair.st
	pair.s.st = &pair.st
	return Channel{Future: &pair.f, Sender: &pair.s}
}

// Serial returns the serial number assigned to this channel.
func (f *Future) Serial() Serial {
	return f.st.serial
}

// Serial returns the serial number assigned to this channel.
func (s *Sender) Serial() Serial {
	return s.st.serial
}

// Poll asks the channel for progress. It first drains the execlet so
// producer continuations run on the polling thread, then inspects the
// state: a pending stream item is delivered as Running, a stored
// terminal is delivered as Complete or Error (idempotently, on every
// later poll), and otherwise the waker is parked to be woken by the
// next send or submit. A nil waker probes without parking.
//
// Poll consumes one reference of a non-nil waker: stored while pending,
// released otherwise.
func (f *Future) Poll(out *Result, waker *Suspension) PollStatus {
	st := f.st

	st.mu.Lock()
	if st.futureDropped {
		st.mu.Unlock()
		violate("future polled after drop")
	}
	if st.inPoll {
		st.mu.Unlock()
		violate("concurrent polls on one future")
	}
	st.inPoll = true
	st.mu.Unlock()

	// Sends landing during the drain observe inPoll and leave the
	// consumer waker parked: the re-inspection below picks up whatever
	// state they produced.
	st.exec.drain()

	var status PollStatus
	var wakeP, staleC, staleE *Suspension

	st.mu.Lock()
	st.inPoll = false
	switch {
	case st.slotFull:
		out.Value = st.slot
		st.slot = nil
		st.slotFull = false
		wakeP = st.producerW
		st.producerW = nil
		staleC = st.consumerW
		st.consumerW = nil
		status = PollRunning
	case st.terminal != PollPending:
		if st.terminal == PollError {
			out.ErrMsg = st.errmsg
		} else {
			out.Value = st.result
		}
		staleC = st.consumerW
		st.consumerW = nil
		status = st.terminal
	default:
		if waker != nil {
			staleC = st.consumerW
			st.consumerW = waker
			staleE = st.exec.registerWaker(waker.AddRef())
		}
		status = PollPending
	}
	st.mu.Unlock()

	if status != PollPending && waker != nil {
		waker.Release()
	}
	if staleC != nil {
		staleC.Release()
	}
	if staleE != nil {
		staleE.Release()
	}
	if wakeP != nil {
		// The freed slot lets a parked producer retry its send on this
		// thread. Its channel re-entry takes the lock freshly.
		wakeP.Wake()
	}
	return status
}

// Drop releases the consumer half. A parked producer is woken to
// observe Finished; queued producer continuations run one last time so
// their sends observe the drop.
func (f *Future) Drop() {
	st := f.st

	st.mu.Lock()
	if st.futureDropped {
		st.mu.Unlock()
		violate("future dropped twice")
	}
	st.futureDropped = true
	st.slot = nil
	st.slotFull = false
	wakeP := st.producerW
	st.producerW = nil
	staleC := st.consumerW
	st.consumerW = nil
	bothGone := st.senderDropped
	st.mu.Unlock()

	if staleC != nil {
		staleC.Release()
	}
	if wakeP != nil {
		wakeP.Wake()
	}
	st.exec.drain()
	if staleE := st.exec.registerWaker(nil); staleE != nil {
		staleE.Release()
	}
	if bothGone {
		st.exec.Release()
	}
}

// Send delivers one stream item or one terminal into the channel.
// Running enters the backpressure handshake: Sent when the slot was
// free, Wait when the producer must park (the waker is stored and woken
// once the slot frees up), Finished when the consumer half is gone.
// Complete and Error store the terminal exactly once and wake a parked
// consumer. Send after a terminal send, or after the sender was
// dropped, is lifecycle corruption.
//
// Send consumes one reference of a non-nil waker: stored on Wait,
// released otherwise.
func (s *Sender) Send(status PollStatus, value any, waker *Suspension) SendResult {
	st := s.st
	st.class.check(status, value)

	var result SendResult
	var wakeC, releaseP *Suspension

	st.mu.Lock()
	if st.senderDropped {
		st.mu.Unlock()
		violate("send after sender dropped")
	}
	if st.terminal != PollPending {
		st.mu.Unlock()
		violate("send after terminal status")
	}
	switch status {
	case PollRunning:
		switch {
		case !st.class.stream:
			st.mu.Unlock()
			violate("stream item sent into a single-value channel")
		case st.futureDropped:
			result = SendFinished
		case st.slotFull:
			if st.producerW != nil && waker != nil {
				st.mu.Unlock()
				violate("concurrent sends on one sender")
			}
			if waker != nil {
				st.producerW = waker
				waker = nil
			}
			result = SendWait
		default:
			st.slot = value
			st.slotFull = true
			if !st.inPoll {
				wakeC = st.consumerW
				st.consumerW = nil
			}
			result = SendSent
		}
	case PollComplete, PollError:
		st.terminal = status
		if status == PollError {
			st.errmsg = value.(string)
		} else {
			st.result = value
		}
		releaseP = st.producerW
		st.producerW = nil
		if !st.futureDropped && !st.inPoll {
			wakeC = st.consumerW
			st.consumerW = nil
		}
		result = SendSent
	default:
		st.mu.Unlock()
		violate("invalid send status")
	}
	st.mu.Unlock()

	if waker != nil {
		waker.Release()
	}
	if releaseP != nil {
		releaseP.Release()
	}
	if wakeC != nil {
		wakeC.Wake()
	}
	return result
}

// Drop releases the producer half. Dropping without a terminal send
// leaves the consumer pending forever; the producer machinery always
// sends a terminal first, so this path only arises from abandoned
// manual senders.
func (s *Sender) Drop() {
	st := s.st

	st.mu.Lock()
	if st.senderDropped {
		st.mu.Unlock()
		violate("sender dropped twice")
	}
	st.senderDropped = true
	releaseP := st.producerW
	st.producerW = nil
	bothGone := st.futureDropped
	st.mu.Unlock()

	if releaseP != nil {
		releaseP.Release()
	}
	if bothGone {
		st.exec.Release()
	}
}
