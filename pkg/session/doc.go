/*
Package session tracks the lifecycle of one streaming run.

A Session binds a paced counting producer to a bounded channel; an
UploadSession binds a caller-supplied lazy source to an unbounded
channel. Both follow the same state machine:

	idle -> started -> completed | cancelled | faulted

Start is valid only from idle and returns ErrInvalidState otherwise; a
session is single-use. Cancel is valid only while started; it signals
the producer, and the terminal state is recorded when the producer
observes the signal and completes the channel. Clean exhaustion ends in
completed, an explicit stop in cancelled, and any other producer error
in faulted, with the error available through Err.

	s := session.New(session.DefaultConfig())
	ch, err := s.Start(ctx, session.Request{Count: 10, Delay: 500 * time.Millisecond})
	if err != nil {
		return err
	}
	// drain ch, then inspect s.State() and s.Err()
*/
package session
