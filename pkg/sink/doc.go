/*
Package sink fans uploaded streams out to observers.

An UploadSink is the server-side end of a client-driven upload: Accept
drains a lazy sequence to exhaustion and broadcasts every item to the
observers registered at the moment that item arrived. Each broadcast
works from a snapshot of the registry, so observers may come and go
while a stream is in flight. Delivery is at-most-once with no replay
buffer, and a failing or stuck observer costs the broadcast at most one
notification attempt (bounded by NotifyTimeout when set) before the
remaining observers are served.

RedisObserver and RedisSource bridge a sink to Redis pub/sub, so
uploads can cross process boundaries:

	obs := sink.NewRedisObserver(client, "uploads")
	s := sink.New[string]()
	s.Register(obs)
	err := s.Accept(ctx, localSequence)
*/
package sink
