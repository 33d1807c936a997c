package image

import (
	"context"

	"github.com/buildpacks/stager/pkg/config"
)

// Store looks up previously built stage images.
type Store interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// Backend materializes images.
type Backend interface {
	Store
	// Pull makes a base image available according to policy.
	Pull(ctx context.Context, ref string, policy config.PullPolicy) error
	// Commit builds img on top of its parent and stores it under img.Name().
	Commit(ctx context.Context, stage string, img Image) error
}
