package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/testutil"
	"github.com/google/uuid"
)

func newSeedingWorkspaceRepo() (*testutil.MockWorkspaceRepository, *testutil.MockAccountRepository, *testutil.MockCategoryRepository) {
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	accountRepo := testutil.NewMockAccountRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	workspaceRepo.Accounts = accountRepo
	workspaceRepo.Categories = categoryRepo
	return workspaceRepo, accountRepo, categoryRepo
}

func TestCreateWorkspace_SeedsDefaults(t *testing.T) {
	workspaceRepo, accountRepo, categoryRepo := newSeedingWorkspaceRepo()
	publisher := testutil.NewMockEventPublisher()
	workspaceService := NewWorkspaceService(workspaceRepo)
	workspaceService.SetEventPublisher(publisher)
	ctx := context.Background()

	workspace, err := workspaceService.CreateWorkspace(ctx, uuid.New(), CreateWorkspaceInput{Name: "Household", Currency: "idr", Timezone: "Asia/Jakarta"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if workspace.Currency != "IDR" {
		t.Errorf("Expected currency IDR, got %s", workspace.Currency)
	}
	if workspace.DefaultsSeededAt == nil {
		t.Error("Expected DefaultsSeededAt to be set")
	}

	accounts, _ := accountRepo.GetAllByWorkspace(ctx, workspace.ID)
	categories, _ := categoryRepo.GetAllByWorkspace(ctx, workspace.ID)
	if len(accounts) != 5 {
		t.Errorf("Expected 5 default accounts, got %d", len(accounts))
	}
	if len(categories) != 14 {
		t.Errorf("Expected 14 default categories, got %d", len(categories))
	}

	types := publisher.Types()
	if len(types) != 1 || types[0] != "workspace.seeded" {
		t.Errorf("Expected one workspace.seeded event, got %v", types)
	}
}

func TestCreateWorkspace_SeedFailureKeepsWorkspace(t *testing.T) {
	workspaceRepo, accountRepo, _ := newSeedingWorkspaceRepo()
	workspaceRepo.SeedErr = errors.New("connection reset")
	workspaceService := NewWorkspaceService(workspaceRepo)
	ctx := context.Background()
	userID := uuid.New()

	workspace, err := workspaceService.CreateWorkspace(ctx, userID, CreateWorkspaceInput{Name: "Household"})
	if err != nil {
		t.Fatalf("Expected the created workspace despite the seeding failure, got %v", err)
	}
	if workspace.DefaultsSeededAt != nil {
		t.Error("Expected DefaultsSeededAt to stay unset")
	}

	owned, _ := workspaceService.GetWorkspaces(ctx, userID)
	if len(owned) != 1 || owned[0].ID != workspace.ID {
		t.Fatalf("Expected the workspace to be listed, got %v", owned)
	}

	workspaceRepo.SeedErr = nil
	result, err := workspaceService.EnsureDefaults(ctx, workspace.ID)
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if result.AccountsCreated != 5 {
		t.Errorf("Expected 5 accounts on retry, got %d", result.AccountsCreated)
	}
	accounts, _ := accountRepo.GetAllByWorkspace(ctx, workspace.ID)
	if len(accounts) != 5 {
		t.Errorf("Expected 5 default accounts, got %d", len(accounts))
	}
}

func TestCreateWorkspace_Defaults(t *testing.T) {
	workspaceRepo, _, _ := newSeedingWorkspaceRepo()
	workspaceService := NewWorkspaceService(workspaceRepo)

	workspace, err := workspaceService.CreateWorkspace(context.Background(), uuid.New(), CreateWorkspaceInput{Name: "Personal"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if workspace.Currency != domain.DefaultWorkspaceCurrency || workspace.Timezone != domain.DefaultWorkspaceTimezone {
		t.Errorf("Expected USD/UTC defaults, got %s/%s", workspace.Currency, workspace.Timezone)
	}
}

func TestCreateWorkspace_Validation(t *testing.T) {
	workspaceRepo, _, _ := newSeedingWorkspaceRepo()
	workspaceService := NewWorkspaceService(workspaceRepo)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateWorkspaceInput
		wantErr error
	}{
		{"empty name", CreateWorkspaceInput{Name: " "}, domain.ErrNameRequired},
		{"bad currency", CreateWorkspaceInput{Name: "A", Currency: "US1"}, domain.ErrInvalidCurrency},
		{"short currency", CreateWorkspaceInput{Name: "A", Currency: "US"}, domain.ErrInvalidCurrency},
		{"bad timezone", CreateWorkspaceInput{Name: "A", Timezone: "Mars/Olympus"}, domain.ErrInvalidTimezone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := workspaceService.CreateWorkspace(ctx, uuid.New(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEnsureDefaults_Idempotent(t *testing.T) {
	workspaceRepo, accountRepo, _ := newSeedingWorkspaceRepo()
	publisher := testutil.NewMockEventPublisher()
	workspaceService := NewWorkspaceService(workspaceRepo)
	workspaceService.SetEventPublisher(publisher)
	ctx := context.Background()

	workspaceID := uuid.New()
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: workspaceID, UserID: uuid.New(), Name: "W"})

	first, err := workspaceService.EnsureDefaults(ctx, workspaceID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if first.AccountsCreated != 5 || first.CategoriesCreated != 14 {
		t.Errorf("Expected 5/14 created, got %d/%d", first.AccountsCreated, first.CategoriesCreated)
	}

	second, err := workspaceService.EnsureDefaults(ctx, workspaceID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if second.AccountsCreated != 0 || second.CategoriesCreated != 0 {
		t.Errorf("Expected nothing created on second call, got %d/%d", second.AccountsCreated, second.CategoriesCreated)
	}

	accounts, _ := accountRepo.GetAllByWorkspace(ctx, workspaceID)
	if len(accounts) != 5 {
		t.Errorf("Expected 5 accounts, got %d", len(accounts))
	}
	if len(publisher.Types()) != 1 {
		t.Errorf("Expected a single seeded event, got %v", publisher.Types())
	}
}

func TestEnsureDefaults_Concurrent(t *testing.T) {
	workspaceRepo, accountRepo, categoryRepo := newSeedingWorkspaceRepo()
	workspaceService := NewWorkspaceService(workspaceRepo)
	ctx := context.Background()

	workspaceID := uuid.New()
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: workspaceID, UserID: uuid.New(), Name: "W"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = workspaceService.EnsureDefaults(ctx, workspaceID)
		}()
	}
	wg.Wait()

	accounts, _ := accountRepo.GetAllByWorkspace(ctx, workspaceID)
	categories, _ := categoryRepo.GetAllByWorkspace(ctx, workspaceID)
	if len(accounts) != 5 || len(categories) != 14 {
		t.Errorf("Expected exactly 5 accounts and 14 categories, got %d and %d", len(accounts), len(categories))
	}
}

func TestEnsureDefaults_KeepsExistingKind(t *testing.T) {
	workspaceRepo, accountRepo, categoryRepo := newSeedingWorkspaceRepo()
	workspaceService := NewWorkspaceService(workspaceRepo)
	ctx := context.Background()

	workspaceID := uuid.New()
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: workspaceID, UserID: uuid.New(), Name: "W"})
	accountRepo.AddAccount(&domain.Account{ID: uuid.New(), WorkspaceID: workspaceID, Name: "Mine", Type: domain.AccountTypeCash})

	result, err := workspaceService.EnsureDefaults(ctx, workspaceID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.AccountsCreated != 0 || result.CategoriesCreated != 14 {
		t.Errorf("Expected 0/14 created, got %d/%d", result.AccountsCreated, result.CategoriesCreated)
	}

	categories, _ := categoryRepo.GetAllByWorkspace(ctx, workspaceID)
	if len(categories) != 14 {
		t.Errorf("Expected 14 categories, got %d", len(categories))
	}
}

func TestGetWorkspace_OtherOwner(t *testing.T) {
	workspaceRepo, _, _ := newSeedingWorkspaceRepo()
	publisher := testutil.NewMockEventPublisher()
	workspaceService := NewWorkspaceService(workspaceRepo)
	workspaceService.SetEventPublisher(publisher)
	ctx := context.Background()

	owner := uuid.New()
	workspaceID := uuid.New()
	workspaceRepo.AddWorkspace(&domain.Workspace{ID: workspaceID, UserID: owner, Name: "W"})

	if _, err := workspaceService.GetWorkspace(ctx, uuid.New(), workspaceID); !errors.Is(err, domain.ErrWorkspaceNotFound) {
		t.Errorf("Expected ErrWorkspaceNotFound, got %v", err)
	}
	if err := workspaceService.DeleteWorkspace(ctx, uuid.New(), workspaceID); !errors.Is(err, domain.ErrWorkspaceNotFound) {
		t.Errorf("Expected ErrWorkspaceNotFound on delete by stranger, got %v", err)
	}

	tz := "Europe/Berlin"
	updated, err := workspaceService.UpdateWorkspace(ctx, owner, workspaceID, UpdateWorkspaceInput{Timezone: &tz})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Timezone != tz {
		t.Errorf("Expected timezone %s, got %s", tz, updated.Timezone)
	}
	if err := workspaceService.DeleteWorkspace(ctx, owner, workspaceID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	types := publisher.Types()
	if len(types) != 2 || types[0] != "workspace.updated" || types[1] != "workspace.deleted" {
		t.Errorf("Expected updated then deleted, got %v", types)
	}
}
