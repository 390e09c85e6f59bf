package identity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkuser "github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/terravita/core/internal/models"
)

// ClerkSyncer writes the local role into the Clerk user's public metadata,
// where the frontend reads it from the session token.
type ClerkSyncer struct{}

// NewClerkSyncer configures the Clerk SDK with the backend API key. The SDK
// holds the key globally, so one syncer serves the whole process.
func NewClerkSyncer(secretKey string) *ClerkSyncer {
	clerk.SetKey(secretKey)
	return &ClerkSyncer{}
}

func (s *ClerkSyncer) PushRole(ctx context.Context, externalID string, role models.Role) error {
	meta, err := json.Marshal(map[string]string{"role": string(role)})
	if err != nil {
		return err
	}
	raw := json.RawMessage(meta)
	if _, err := clerkuser.UpdateMetadata(ctx, externalID, &clerkuser.UpdateMetadataParams{
		PublicMetadata: &raw,
	}); err != nil {
		return fmt.Errorf("clerk metadata update for %s: %w", externalID, err)
	}
	return nil
}
