// Package geo resolves the viewer's position with a bounded wait. The result
// is a three-way variant: coordinates, permission denied, or
// unavailable/timeout. Timeouts are reported distinctly so the UI can word
// them apart from a denial.
package geo

import (
	"context"
	"errors"
	"time"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

var (
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("geolocation position unavailable")
	ErrTimeout             = errors.New("geolocation timed out")
)

// Provider yields the current position. Implementations wrap whatever the
// platform offers (browser API behind a bridge, IP lookup, fixed test values).
type Provider interface {
	CurrentPosition(ctx context.Context) (*models.Coordinates, error)
}

// Lookup asks the provider for the current position, waiting at most wait.
// Provider errors pass through when they are already one of the package
// sentinels; anything else maps to ErrPositionUnavailable. There is no retry
// policy; callers retry by calling Lookup again.
func Lookup(ctx context.Context, p Provider, wait time.Duration) (*models.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	type result struct {
		coords *models.Coordinates
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		coords, err := p.CurrentPosition(ctx)
		ch <- result{coords, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ErrTimeout
	case r := <-ch:
		if r.err != nil {
			if errors.Is(r.err, ErrPermissionDenied) || errors.Is(r.err, ErrTimeout) {
				return nil, r.err
			}
			if errors.Is(r.err, context.DeadlineExceeded) {
				return nil, ErrTimeout
			}
			return nil, ErrPositionUnavailable
		}
		return r.coords, nil
	}
}
