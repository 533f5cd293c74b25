package controller

import "context"

//go:generate mockgen -source=deps.go -destination=mock_deps_test.go -package=controller

// Repository persists the alarm list in registry order.
type Repository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, values []string) error
}

// Player plays the alarm sound until stopped.
type Player interface {
	Play(ctx context.Context, path string) error
	Stop() error
	Playing() bool
}
