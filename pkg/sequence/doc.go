/*
Package sequence provides lazy, pull-based sources of stream elements.

A Source yields one element per Next call and suspends production in
between, which makes it the natural shape for client-driven uploads: the
remote side pulls the next element only when it is ready to send it.
Counting sources (Count, CountPaced), slices (FromSlice), generator
functions (FromFunc), and channel readers (FromChannel) all satisfy the
same contract, so consumers and sinks do not care where elements come
from.

	src := sequence.CountPaced(10, 500*time.Millisecond)
	defer src.Close()

	for {
		v, ok, err := src.Next(ctx)
		if err != nil || !ok {
			break
		}
		send(v)
	}
*/
package sequence
