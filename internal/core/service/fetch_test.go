package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

func TestFetch(t *testing.T) {
	ok := Fetch(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	if ok.State() != domain.StateSuccess {
		t.Errorf("State() = %v, want success", ok.State())
	}
	if len(ok.Value()) != 1 {
		t.Errorf("Value() = %v", ok.Value())
	}

	boom := errors.New("boom")
	failed := Fetch(context.Background(), func(ctx context.Context) (int, error) {
		return 0, boom
	})
	if failed.State() != domain.StateFailure {
		t.Errorf("State() = %v, want failure", failed.State())
	}
	if !errors.Is(failed.Err(), boom) {
		t.Errorf("Err() = %v, want boom", failed.Err())
	}
}
