package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
)

// Every mock in this file is safe for concurrent use and hands out copies, so
// tests can mutate the repositories while a ledger subscription is reloading.

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mu       sync.RWMutex
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name, pictureURL *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.ByID[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.Users[auth0ID]; ok {
		u := *user
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(ctx context.Context, auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name, pictureURL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.Users[auth0ID]; ok {
		u := *user
		return &u, nil
	}
	now := time.Now()
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	u := *user
	return &u, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository.
// SeedDefaults writes into the linked account and category mocks when set.
type MockWorkspaceRepository struct {
	mu         sync.Mutex
	Workspaces map[uuid.UUID]*domain.Workspace
	order      []uuid.UUID
	Accounts   *MockAccountRepository
	Categories *MockCategoryRepository
	GetByIDErr error
	SeedErr    error
	SeedCalls  int
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces: make(map[uuid.UUID]*domain.Workspace),
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	if ws, ok := m.Workspaces[id]; ok {
		w := *ws
		return &w, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetAllByUserID retrieves every workspace owned by a user in creation order
func (m *MockWorkspaceRepository) GetAllByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Workspace
	for _, id := range m.order {
		if ws, ok := m.Workspaces[id]; ok && ws.UserID == userID {
			w := *ws
			result = append(result, &w)
		}
	}
	return result, nil
}

// Create creates a new workspace
func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) (*domain.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := *workspace
	w.ID = uuid.New()
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	m.Workspaces[w.ID] = &w
	m.order = append(m.order, w.ID)
	out := w
	return &out, nil
}

// Update applies a workspace patch
func (m *MockWorkspaceRepository) Update(ctx context.Context, id uuid.UUID, patch domain.WorkspacePatch) (*domain.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.Workspaces[id]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	if patch.Name != nil {
		ws.Name = *patch.Name
	}
	if patch.Currency != nil {
		ws.Currency = *patch.Currency
	}
	if patch.Timezone != nil {
		ws.Timezone = *patch.Timezone
	}
	ws.UpdatedAt = time.Now()
	w := *ws
	return &w, nil
}

// Delete deletes a workspace
func (m *MockWorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Workspaces[id]; !ok {
		return domain.ErrWorkspaceNotFound
	}
	delete(m.Workspaces, id)
	return nil
}

// SeedDefaults seeds each empty kind while holding the repository lock
func (m *MockWorkspaceRepository) SeedDefaults(ctx context.Context, id uuid.UUID, accounts []*domain.Account, categories []*domain.Category) (*domain.SeedResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SeedCalls++
	if m.SeedErr != nil {
		return nil, m.SeedErr
	}

	ws, ok := m.Workspaces[id]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}

	result := &domain.SeedResult{}
	if m.Accounts != nil && m.Accounts.count(id) == 0 {
		for _, a := range accounts {
			a.WorkspaceID = id
			if _, err := m.Accounts.Create(ctx, a); err != nil {
				return nil, err
			}
			result.AccountsCreated++
		}
	}
	if m.Categories != nil && m.Categories.count(id) == 0 {
		for _, c := range categories {
			c.WorkspaceID = id
			if _, err := m.Categories.Create(ctx, c); err != nil {
				return nil, err
			}
			result.CategoriesCreated++
		}
	}
	if ws.DefaultsSeededAt == nil {
		now := time.Now()
		ws.DefaultsSeededAt = &now
	}
	return result, nil
}

// AddWorkspace adds a workspace to the mock repository (helper for tests)
func (m *MockWorkspaceRepository) AddWorkspace(workspace *domain.Workspace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Workspaces[workspace.ID] = workspace
	m.order = append(m.order, workspace.ID)
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	mu       sync.RWMutex
	Accounts map[uuid.UUID]*domain.Account
	order    []uuid.UUID
	ListErr  error
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[uuid.UUID]*domain.Account),
	}
}

// Create creates a new account
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Accounts {
		if existing.WorkspaceID == account.WorkspaceID && existing.Name == account.Name {
			return nil, domain.ErrAccountNameExists
		}
	}
	a := *account
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.Accounts[a.ID] = &a
	m.order = append(m.order, a.ID)
	out := a
	return &out, nil
}

// GetByID retrieves an account by workspace and ID
func (m *MockAccountRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.Accounts[id]; ok && a.WorkspaceID == workspaceID {
		out := *a
		return &out, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetAllByWorkspace retrieves all accounts for a workspace in creation order
func (m *MockAccountRepository) GetAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var result []*domain.Account
	for _, id := range m.order {
		if a, ok := m.Accounts[id]; ok && a.WorkspaceID == workspaceID {
			out := *a
			result = append(result, &out)
		}
	}
	return result, nil
}

// Update applies an account patch
func (m *MockAccountRepository) Update(ctx context.Context, workspaceID, id uuid.UUID, patch domain.AccountPatch) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Accounts[id]
	if !ok || a.WorkspaceID != workspaceID {
		return nil, domain.ErrAccountNotFound
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Type != nil {
		a.Type = *patch.Type
	}
	if patch.InitialBalance != nil {
		a.InitialBalance = *patch.InitialBalance
	}
	if patch.Note != nil {
		a.Note = *patch.Note
	}
	a.UpdatedAt = time.Now()
	out := *a
	return &out, nil
}

// Delete removes an account
func (m *MockAccountRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Accounts[id]
	if !ok || a.WorkspaceID != workspaceID {
		return domain.ErrAccountNotFound
	}
	delete(m.Accounts, id)
	return nil
}

// AddAccount adds an account to the mock repository (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Accounts[account.ID] = account
	m.order = append(m.order, account.ID)
}

// SetListErr makes GetAllByWorkspace fail with err
func (m *MockAccountRepository) SetListErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListErr = err
}

func (m *MockAccountRepository) count(workspaceID uuid.UUID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, a := range m.Accounts {
		if a.WorkspaceID == workspaceID {
			n++
		}
	}
	return n
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	mu         sync.RWMutex
	Categories map[uuid.UUID]*domain.Category
	order      []uuid.UUID
	ListErr    error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Categories {
		if existing.WorkspaceID == category.WorkspaceID && existing.Name == category.Name && existing.Type == category.Type {
			return nil, domain.ErrCategoryNameExists
		}
	}
	c := *category
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.Categories[c.ID] = &c
	m.order = append(m.order, c.ID)
	out := c
	return &out, nil
}

// GetByID retrieves a category by workspace and ID
func (m *MockCategoryRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.Categories[id]; ok && c.WorkspaceID == workspaceID {
		out := *c
		return &out, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAllByWorkspace retrieves all categories for a workspace in creation order
func (m *MockCategoryRepository) GetAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var result []*domain.Category
	for _, id := range m.order {
		if c, ok := m.Categories[id]; ok && c.WorkspaceID == workspaceID {
			out := *c
			result = append(result, &out)
		}
	}
	return result, nil
}

// Update applies a category patch
func (m *MockCategoryRepository) Update(ctx context.Context, workspaceID, id uuid.UUID, patch domain.CategoryPatch) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Categories[id]
	if !ok || c.WorkspaceID != workspaceID {
		return nil, domain.ErrCategoryNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Icon != nil {
		c.Icon = *patch.Icon
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	c.UpdatedAt = time.Now()
	out := *c
	return &out, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Categories[id]
	if !ok || c.WorkspaceID != workspaceID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Categories[category.ID] = category
	m.order = append(m.order, category.ID)
}

func (m *MockCategoryRepository) count(workspaceID uuid.UUID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.Categories {
		if c.WorkspaceID == workspaceID {
			n++
		}
	}
	return n
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	mu           sync.RWMutex
	Transactions map[uuid.UUID]*domain.Transaction
	order        []uuid.UUID
	ListErr      error
	ListCalls    int
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *transaction
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.Transactions[t.ID] = &t
	m.order = append(m.order, t.ID)
	out := t
	return &out, nil
}

// GetByID retrieves a transaction by workspace and ID
func (m *MockTransactionRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.Transactions[id]; ok && t.WorkspaceID == workspaceID {
		out := *t
		return &out, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// GetAllByWorkspace retrieves all transactions for a workspace in insertion order
func (m *MockTransactionRepository) GetAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var result []*domain.Transaction
	for _, id := range m.order {
		if t, ok := m.Transactions[id]; ok && t.WorkspaceID == workspaceID {
			out := *t
			result = append(result, &out)
		}
	}
	return result, nil
}

// Update applies a transaction patch
func (m *MockTransactionRepository) Update(ctx context.Context, workspaceID, id uuid.UUID, patch domain.TransactionPatch) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Transactions[id]
	if !ok || t.WorkspaceID != workspaceID {
		return nil, domain.ErrTransactionNotFound
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Amount != nil {
		t.Amount.Decimal = *patch.Amount
		t.Amount.Valid = true
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Account != nil {
		t.Account = *patch.Account
	}
	if patch.Date != nil {
		d := *patch.Date
		t.Date = &d
	}
	if patch.ExcludeFromCalculations != nil {
		t.ExcludeFromCalculations = *patch.ExcludeFromCalculations
	}
	t.UpdatedAt = time.Now()
	out := *t
	return &out, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Transactions[id]
	if !ok || t.WorkspaceID != workspaceID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions[transaction.ID] = transaction
	m.order = append(m.order, transaction.ID)
}

// SetListErr makes GetAllByWorkspace fail with err
func (m *MockTransactionRepository) SetListErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListErr = err
}

// Calls returns how many times GetAllByWorkspace ran
func (m *MockTransactionRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ListCalls
}

// MockPreferenceStore is an in-memory domain.PreferenceStore
type MockPreferenceStore struct {
	mu     sync.Mutex
	Values map[uuid.UUID]map[string]string
	SetErr error
}

// NewMockPreferenceStore creates a new MockPreferenceStore
func NewMockPreferenceStore() *MockPreferenceStore {
	return &MockPreferenceStore{Values: make(map[uuid.UUID]map[string]string)}
}

// Get returns a stored value
func (m *MockPreferenceStore) Get(ctx context.Context, userID uuid.UUID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Values[userID][key]
	return v, ok, nil
}

// Set stores a value
func (m *MockPreferenceStore) Set(ctx context.Context, userID uuid.UUID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Values[userID] == nil {
		m.Values[userID] = make(map[string]string)
	}
	m.Values[userID][key] = value
	return nil
}

// Delete removes keys
func (m *MockPreferenceStore) Delete(ctx context.Context, userID uuid.UUID, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.Values[userID], k)
	}
	return nil
}

// Value returns a stored value, empty when absent (helper for tests)
func (m *MockPreferenceStore) Value(userID uuid.UUID, key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Values[userID][key]
}
