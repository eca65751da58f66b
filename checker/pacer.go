package checker

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// DefaultYear returns the calendar year of now as a four digit string.
func DefaultYear(now time.Time) string {
	return strconv.Itoa(now.Year())
}

// pacer keeps a fixed pause between the end of one query and the start of
// the next. The first query is not delayed.
type pacer struct {
	limit   rate.Limit
	limiter *rate.Limiter
}

func newPacer(delay time.Duration) *pacer {
	if delay <= 0 {
		return &pacer{limit: rate.Inf}
	}
	return &pacer{limit: rate.Every(delay)}
}

// Wait blocks until a full delay has passed since the last call to Done.
func (p *pacer) Wait(ctx context.Context) error {
	if p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

// Done marks the end of a query at now. The limiter is re-armed with its
// only token spent, so the next Wait lasts a full delay from now no matter
// how long the query took.
func (p *pacer) Done(now time.Time) {
	if p.limit == rate.Inf {
		return
	}
	p.limiter = rate.NewLimiter(p.limit, 1)
	p.limiter.AllowN(now, 1)
}
