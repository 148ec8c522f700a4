package channel

import (
	"context"
	"fmt"
	"time"
)

// Example demonstrates basic channel usage.
func Example() {
	ch := NewBounded[int](3)
	ctx := context.Background()

	_ = ch.Put(ctx, 1)
	_ = ch.Put(ctx, 2)
	ch.Complete(nil)

	for {
		ok, _ := ch.WaitReadable(ctx)
		if !ok {
			break
		}
		for {
			v, ok := ch.TryTake()
			if !ok {
				break
			}
			fmt.Println("received", v)
		}
	}

	// Output:
	// received 1
	// received 2
}

// Example_backpressure demonstrates a put blocking on a full buffer.
func Example_backpressure() {
	ch := NewBounded[string](2)
	ctx := context.Background()

	_ = ch.Put(ctx, "first")
	_ = ch.Put(ctx, "second")
	fmt.Printf("buffer full: %d/%d\n", ch.Len(), ch.Cap())

	unblocked := make(chan struct{})
	go func() {
		defer close(unblocked)
		fmt.Println("putting third (will block)...")
		_ = ch.Put(ctx, "third")
		fmt.Println("put unblocked")
	}()

	time.Sleep(50 * time.Millisecond)
	v, _ := ch.TryTake()
	<-unblocked

	fmt.Println("took", v)

	// Output:
	// buffer full: 2/2
	// putting third (will block)...
	// put unblocked
	// took first
}

// Example_cancellation demonstrates a blocked put resolving on cancellation.
func Example_cancellation() {
	ch := NewBounded[int](1)
	_ = ch.Put(context.Background(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := ch.Put(ctx, 1)
	fmt.Println("put failed:", err)

	// Output:
	// put failed: context canceled
}
