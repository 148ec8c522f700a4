/*
Package consumer drains channels and sources item by item.

Drain is the read side of the producer/channel pairing: it alternates
between non-blocking takes and readable-waits, delivering each item to a
callback and returning only when the channel is completed and empty, the
context is cancelled, or the callback fails.

	err := consumer.Drain(ctx, ch, func(n int) error {
		fmt.Println("received", n)
		return nil
	})
*/
package consumer
