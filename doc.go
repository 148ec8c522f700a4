/*
Package streamkit provides cancellable streaming primitives for moving a
sequence of items between a producer and a consumer, in either direction,
with back-pressure and cooperative cancellation.

Channels (pkg/channel):
  - Bounded and unbounded FIFO hand-off queues with blocking put,
    non-blocking take, and an idempotent completion signal

Production (pkg/producer, pkg/sequence):
  - Delay-paced counting producers launched fire-and-forget
  - Lazy Source sequences for caller-driven (upload) production

Consumption (pkg/consumer):
  - Drain loops that pull until completion, honoring consumer-side
    cancellation

Orchestration (pkg/session, pkg/sink, pkg/schedule):
  - Streaming sessions with an Idle/Started/Completed/Cancelled/Faulted
    lifecycle
  - Upload sinks that fan received items out to registered observers,
    optionally bridged across processes via Redis pub/sub
  - Cron-driven recurring streaming rounds

Example usage:

	import (
		"github.com/vnykmshr/streamkit/pkg/consumer"
		"github.com/vnykmshr/streamkit/pkg/session"
	)

	sess := session.New(session.DefaultConfig())
	ch, _ := sess.Start(ctx, session.Request{Count: 10, Delay: 500 * time.Millisecond})
	_ = consumer.Drain(ctx, ch, func(n int) error {
		fmt.Println("received", n)
		return nil
	})
*/
package streamkit
