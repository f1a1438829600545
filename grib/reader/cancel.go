package reader

import (
	"context"

	"github.com/gribio/gribds/grib/api"
)

// checkCancelled polls ctx for cooperative cancellation, per spec §5:
// "polled between records ... at the boundary where a file is opened/
// closed and before each decode." Returns an api.Error of KindCancelled
// so callers can distinguish it from every other error kind.
func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return api.NewError(api.KindCancelled, ctx.Err())
	default:
		return nil
	}
}
