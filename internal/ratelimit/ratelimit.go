// Package ratelimit throttles display refreshes with a token bucket.
package ratelimit

import (
	"golang.org/x/time/rate"

	"github.com/JakeFAU/progress-monitor/internal/clock"
)

// Redraw decides whether a display may refresh now.
type Redraw struct {
	limiter *rate.Limiter
	clock   clock.Clock
}

// NewRedraw allows perSecond refreshes on average with no burst beyond one. A
// non-positive perSecond allows every refresh.
func NewRedraw(perSecond float64, clk clock.Clock) *Redraw {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &Redraw{limiter: rate.NewLimiter(limit, 1), clock: clk}
}

// Allow reports whether a refresh may happen now and consumes a token if so.
func (r *Redraw) Allow() bool {
	return r.limiter.AllowN(r.clock.Now(), 1)
}
