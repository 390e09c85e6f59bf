// Package identity pushes local user state out to the external identity
// provider. The local store is the source of truth: a failed push is logged
// and never rolls back the local write.
package identity

import (
	"context"

	"github.com/terravita/core/internal/models"
)

// Syncer mirrors role changes to the identity provider, keyed by the user's
// external id.
type Syncer interface {
	PushRole(ctx context.Context, externalID string, role models.Role) error
}

// Noop is the syncer used when no provider is configured.
type Noop struct{}

func (Noop) PushRole(context.Context, string, models.Role) error { return nil }
