package service

import (
	"context"
	"errors"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultWorkspaceName is the name of the workspace created on first login
const DefaultWorkspaceName = "Personal"

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo         domain.UserRepository
	workspaceService *WorkspaceService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, workspaceService *WorkspaceService) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		workspaceService: workspaceService,
	}
}

// Ensure AuthService can resolve websocket identities
var _ websocket.UserLookup = (*AuthService)(nil)

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	User       *domain.User
	Workspaces []*domain.Workspace
	IsNewUser  bool
}

// AuthenticateUser handles the authentication flow after Auth0 callback.
// Creates the user and a seeded default workspace if they don't exist.
func (s *AuthService) AuthenticateUser(ctx context.Context, auth0ID, email string, name, pictureURL *string) (*AuthResult, error) {
	user, err := s.userRepo.CreateOrGetByAuth0ID(ctx, auth0ID, email, name, pictureURL)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create or get user")
		return nil, err
	}

	workspaces, err := s.workspaceService.GetWorkspaces(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to get workspaces")
		return nil, err
	}

	if len(workspaces) > 0 {
		log.Info().Str("user_id", user.ID.String()).Msg("Existing user authenticated")
		return &AuthResult{User: user, Workspaces: workspaces}, nil
	}

	workspace, err := s.workspaceService.CreateWorkspace(ctx, user.ID, CreateWorkspaceInput{Name: DefaultWorkspaceName})
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to create default workspace")
		return nil, err
	}
	log.Info().Str("user_id", user.ID.String()).Msg("Created new user with default workspace")
	return &AuthResult{
		User:       user,
		Workspaces: []*domain.Workspace{workspace},
		IsNewUser:  true,
	}, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByAuth0ID retrieves a user by their Auth0 ID
func (s *AuthService) GetUserByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(ctx, auth0ID)
}

// GetUserIDByAuth0ID resolves an Auth0 subject to a user id
func (s *AuthService) GetUserIDByAuth0ID(ctx context.Context, auth0ID string) (uuid.UUID, error) {
	user, err := s.userRepo.GetByAuth0ID(ctx, auth0ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return uuid.Nil, websocket.ErrUserNotFound
		}
		return uuid.Nil, err
	}
	return user.ID, nil
}
