package gatekit

import (
	"time"

	"github.com/dmitrymomot/gatekit/pkg/ratelimit"
)

// Config carries the tunable gate settings, loadable from the
// environment with pkg/config:
//
//	var cfg gatekit.Config
//	config.MustLoad(&cfg)
//	gate := gatekit.New(limiter, resolver, tracker, gatekit.WithConfig(cfg))
type Config struct {
	GeneralRateLimit  int           `env:"GATE_GENERAL_RATE_LIMIT" envDefault:"100"`
	GeneralRateWindow time.Duration `env:"GATE_GENERAL_RATE_WINDOW" envDefault:"1m"`
	AIRateLimit       int           `env:"GATE_AI_RATE_LIMIT" envDefault:"10"`
	AIRateWindow      time.Duration `env:"GATE_AI_RATE_WINDOW" envDefault:"1m"`
	BillingRateLimit  int           `env:"GATE_BILLING_RATE_LIMIT" envDefault:"20"`
	BillingRateWindow time.Duration `env:"GATE_BILLING_RATE_WINDOW" envDefault:"1m"`
}

// Specs expands the config into per-class rate limit specs.
func (c Config) Specs() map[RouteClass]ratelimit.Spec {
	return map[RouteClass]ratelimit.Spec{
		ClassGeneral: {Limit: c.GeneralRateLimit, Window: c.GeneralRateWindow},
		ClassAI:      {Limit: c.AIRateLimit, Window: c.AIRateWindow},
		ClassBilling: {Limit: c.BillingRateLimit, Window: c.BillingRateWindow},
	}
}

// WithConfig applies all rate limit specs from the config at once.
func WithConfig(cfg Config) GateOption {
	return func(g *Gate) {
		for class, spec := range cfg.Specs() {
			g.specs[class] = spec
		}
	}
}
