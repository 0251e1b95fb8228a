package domain

import (
	"context"

	"github.com/google/uuid"
)

// Preference keys stored in the device-local key/value store
const (
	PrefOnboardingCompleted = "onboarding_completed"
	PrefCurrentWorkspaceID  = "current_workspace_id"
)

// Preferences is the typed view over a user's stored keys
type Preferences struct {
	OnboardingCompleted bool       `json:"onboardingCompleted"`
	CurrentWorkspaceID  *uuid.UUID `json:"currentWorkspaceId"`
}

// PreferenceStore is a small scalar key/value store scoped by user.
// Get returns ok=false when the key is absent.
type PreferenceStore interface {
	Get(ctx context.Context, userID uuid.UUID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, userID uuid.UUID, key, value string) error
	Delete(ctx context.Context, userID uuid.UUID, keys ...string) error
}
