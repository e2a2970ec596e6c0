package service

import (
	"context"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

// Fetch runs fn and captures its outcome as a view state. It never
// returns Loading; callers show Loading while Fetch is running.
func Fetch[T any](ctx context.Context, fn func(context.Context) (T, error)) domain.Result[T] {
	v, err := fn(ctx)
	if err != nil {
		return domain.Failure[T](err)
	}
	return domain.Success(v)
}
