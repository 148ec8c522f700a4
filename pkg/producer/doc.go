/*
Package producer drives paced production into a channel.

Run writes the counting sequence 0..count-1 with a fixed delay between
writes; Feed does the same for any lazy sequence. Both observe the
context before every write and inside every delay, and both complete the
channel on every exit path, so a blocked reader can never hang on a
producer that died.

Start and StartFeed are the fire-and-forget forms: they launch the
producer on its own goroutine and return at once, leaving the channel as
the only synchronization surface between producer and consumer.

	ch := channel.NewBounded[int](10)
	producer.Start(ctx, ch, producer.Config{Count: 10, Delay: 500 * time.Millisecond})
	// ch is immediately readable while production proceeds in the background
*/
package producer
