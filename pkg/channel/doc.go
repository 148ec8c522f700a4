/*
Package channel provides bounded and unbounded hand-off queues for
single-producer/single-consumer streaming.

A Channel carries items in strict FIFO order from one producer goroutine
to one consumer goroutine. The producer writes with Put and ends the
stream with Complete; the consumer pulls with WaitReadable and TryTake.
Completion is a one-shot, idempotent transition that may carry a terminal
error, and it wakes every blocked operation on both sides.

Bounded vs Unbounded:

Bounded channels cap memory under slow consumers: once the buffer is
full, Put suspends the producer until the consumer drains an item
(explicit back-pressure). Use them for server-to-client flows:

	ch := channel.NewBounded[int](10)

	// producer
	go func() {
		for i := 0; i < 20; i++ {
			if err := ch.Put(ctx, i); err != nil {
				ch.Complete(err)
				return
			}
		}
		ch.Complete(nil)
	}()

	// consumer
	for {
		ok, err := ch.WaitReadable(ctx)
		if err != nil || !ok {
			break
		}
		for {
			v, ok := ch.TryTake()
			if !ok {
				break
			}
			handle(v)
		}
	}

Unbounded channels never block the producer. Use them for upload flows
where production is a user-timed action that must not stall on network
or consumer delay:

	up := channel.NewUnbounded[string]()

Cancellation:

Put and WaitReadable take a context. A blocked operation resolves
promptly when the context is cancelled, returning the context's error;
it does not wait for buffer space or the next item. Cancellation is
cooperative: it never completes the channel by itself. The producer is
responsible for calling Complete on every exit path, including
cancellation and faults, so a blocked reader can never hang forever.

Multiple readers are not supported by the channel itself; fan-out to
several observers is handled by the sink package.
*/
package channel
