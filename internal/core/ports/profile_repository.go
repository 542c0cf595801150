package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/profile"
)

// ProfileRepository gives access to the caller profiles managed by the identity
// provider.
type ProfileRepository interface {
	Add(ctx context.Context, aggregate *profile.Profile) error

	// Get returns an ObjectNotFoundError for identities without a profile.
	Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error)
}
