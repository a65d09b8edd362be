// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package xfut bridges futures and streams between two independently
// scheduled asynchronous runtimes via algebraic effects on
// [code.hybscloud.com/kont].
//
// A producer body runs as an effect computation delivering values
// through a channel; the consumer polls the channel's future half to
// completion without either side knowing the other's scheduler. The
// handshake is a small fixed vocabulary ([PollStatus], [WakeStatus],
// [SendResult]) plus a reference-counted [Suspension] standing for one
// parked coroutine.
//
// # Architecture
//
//   - Channel: [DefineFuture]/[DefineStream] register a per-type erased
//     [Vtable]; its Channel entry pairs a [*Future] with a [*Sender].
//     Producer continuations run on the channel's [Execlet], drained by
//     consumer polls via [code.hybscloud.com/lfq].
//   - Non-blocking: [Future.Poll] and [Sender.Send] never wait. Streams
//     pace producers through the one-slot Wait/Sent/Finished handshake.
//   - Execution: Dual-world API supporting closure-based (Cont-world)
//     and defunctionalized (Expr-world) evaluation.
//   - Error Handling: producer panics cross the boundary as messages
//     captured by a per-type try/catch boundary ([WithTryCatch]); await
//     operations short-circuit returning [code.hybscloud.com/kont.Either].
//
// # API Topologies
//
//   - Operations: [Await], [TryAwait], [AwaitNext], [Yield]. Future
//     delegation is [Await] of a future carrying another [*Future].
//   - Cont-world: [AwaitBind], [AwaitThen], [TryAwaitBind],
//     [NextBranch], [YieldThen], [YieldAll].
//   - Expr-world: Zero-allocation variants like [ExprAwaitBind],
//     [ExprYieldThen], etc. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop] and [ExprLoop] for trampoline-based iterative
//     bodies; [Fold] and [ExprFold] drain a stream into an accumulator.
//   - Blocking: [Block], [Next], [Collect] await one future or drain
//     one stream without the effect machinery.
//
// # Integration
//
//   - Stepping: [Step] and [Advance] evaluate consumer computations one
//     await at a time, retrying on [code.hybscloud.com/iox.ErrWouldBlock],
//     making them easy to integrate with a proactor loop.
//   - Blocking: [Exec], [ExecError], [Run] (and Expr variants) wait
//     past pending polls using adaptive backoff.
//   - Foreign runtimes drive the raw [Vtable] and implement [Awaitable]
//     to expose their own futures to this side.
//
// # Example
//
//	var futInt = xfut.DefineFuture[int]()
//
//	fut := futInt.Start(kont.Pure(42))
//	v, err := xfut.Block[int](fut)
//	if err != nil {
//		// producer failed; err carries its message
//	}
//	_ = v // 42
package xfut
