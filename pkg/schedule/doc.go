/*
Package schedule runs streaming rounds on cron expressions.

Each registered job describes one recurring round: a paced counting
session whose items are handed to the job's deliver callback. The
scheduler uses six-field cron expressions with a leading seconds field
and the usual descriptors ("@every 5s", "@hourly"). Rounds of the same
job never overlap; if a tick fires while the previous round is still
draining, that tick is skipped and reported through OnSkip.

	s := schedule.New(schedule.DefaultConfig())
	_ = s.Add("heartbeat", "@every 10s",
		session.Request{Count: 5, Delay: 200 * time.Millisecond},
		func(n int) error { return publish(n) },
	)
	s.Start()
	defer s.Stop()
*/
package schedule
