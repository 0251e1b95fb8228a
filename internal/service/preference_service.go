package service

import (
	"context"
	"strconv"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PreferenceService reads and writes a user's device-local preferences
type PreferenceService struct {
	store domain.PreferenceStore
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(store domain.PreferenceStore) *PreferenceService {
	return &PreferenceService{store: store}
}

// GetPreferences returns the stored preferences. Unreadable values are treated
// as unset.
func (s *PreferenceService) GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	prefs := &domain.Preferences{}

	onboarding, ok, err := s.store.Get(ctx, userID, domain.PrefOnboardingCompleted)
	if err != nil {
		return nil, err
	}
	if ok {
		prefs.OnboardingCompleted, _ = strconv.ParseBool(onboarding)
	}

	current, ok, err := s.store.Get(ctx, userID, domain.PrefCurrentWorkspaceID)
	if err != nil {
		return nil, err
	}
	if ok {
		if id, err := uuid.Parse(current); err == nil {
			prefs.CurrentWorkspaceID = &id
		} else {
			log.Warn().Str("user_id", userID.String()).Str("value", current).Msg("Ignoring invalid current workspace preference")
		}
	}

	return prefs, nil
}

// SetOnboardingCompleted records whether onboarding finished
func (s *PreferenceService) SetOnboardingCompleted(ctx context.Context, userID uuid.UUID, completed bool) error {
	return s.store.Set(ctx, userID, domain.PrefOnboardingCompleted, strconv.FormatBool(completed))
}

// SetCurrentWorkspace remembers the workspace to reopen. uuid.Nil clears it.
func (s *PreferenceService) SetCurrentWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) error {
	if workspaceID == uuid.Nil {
		return s.store.Delete(ctx, userID, domain.PrefCurrentWorkspaceID)
	}
	return s.store.Set(ctx, userID, domain.PrefCurrentWorkspaceID, workspaceID.String())
}

// Clear removes both preference keys, used on sign-out
func (s *PreferenceService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Delete(ctx, userID, domain.PrefOnboardingCompleted, domain.PrefCurrentWorkspaceID)
}
