package session

import (
	"github.com/vnykmshr/streamkit/pkg/metrics"
)

// WithMetrics returns a copy of cfg whose state-change hook records
// session starts and terminal states in the given metrics registry. A
// user-supplied OnStateChange still runs after the counters update.
func WithMetrics(cfg Config, name string, mc metrics.Config) Config {
	if !mc.Enabled {
		return cfg
	}
	reg := metrics.DefaultRegistry
	if mc.Registry != nil {
		reg = metrics.NewRegistry(mc.Registry)
	}
	userHook := cfg.OnStateChange
	cfg.OnStateChange = func(from, to State) {
		switch {
		case to == StateStarted:
			reg.SessionsStarted.WithLabelValues(name).Inc()
		case to.Terminal():
			reg.SessionsEnded.WithLabelValues(name, to.String()).Inc()
		}
		if userHook != nil {
			userHook(from, to)
		}
	}
	return cfg
}
