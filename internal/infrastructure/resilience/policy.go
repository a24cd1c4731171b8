package resilience

import "time"

// Policy bundles the retry and circuit-breaker settings for one executor.
// Zero or out-of-range fields fall back to the defaults, so a partially
// filled Policy is safe to use.
type Policy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64

	BreakerEnabled   bool
	BreakerMinCalls  uint32
	BreakerTripRatio float64
	BreakerCooldown  time.Duration
	BreakerProbes    uint32
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     400 * time.Millisecond,
		BackoffFactor:  2.0,

		BreakerEnabled:   true,
		BreakerMinCalls:  10,
		BreakerTripRatio: 0.5,
		BreakerCooldown:  30 * time.Second,
		BreakerProbes:    2,
	}
}

func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()

	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = def.InitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = def.MaxBackoff
	}
	if p.MaxBackoff < p.InitialBackoff {
		p.MaxBackoff = p.InitialBackoff
	}
	if p.BackoffFactor < 1.0 {
		p.BackoffFactor = def.BackoffFactor
	}

	if p.BreakerMinCalls == 0 {
		p.BreakerMinCalls = def.BreakerMinCalls
	}
	if p.BreakerTripRatio <= 0 || p.BreakerTripRatio > 1 {
		p.BreakerTripRatio = def.BreakerTripRatio
	}
	if p.BreakerCooldown <= 0 {
		p.BreakerCooldown = def.BreakerCooldown
	}
	if p.BreakerProbes == 0 {
		p.BreakerProbes = def.BreakerProbes
	}

	return p
}
