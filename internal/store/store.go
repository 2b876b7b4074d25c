// Package store owns the ledger state. It is the only place expenses,
// categories, budgets and settings are mutated, and it persists the full
// state after every mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/report"
	"github.com/Veraticus/spend/internal/service"
)

// ErrNotFound is returned when an id does not match any record.
var ErrNotFound = fmt.Errorf("record %w", common.ErrNotFound)

// State is the complete persisted ledger.
type State struct {
	Expenses   []model.Expense  `json:"expenses"`
	Categories []model.Category `json:"categories"`
	Budgets    []model.Budget   `json:"budgets"`
	Settings   model.Settings   `json:"settings"`
}

func (s State) clone() State {
	return State{
		Expenses:   slices.Clone(s.Expenses),
		Categories: slices.Clone(s.Categories),
		Budgets:    slices.Clone(s.Budgets),
		Settings:   s.Settings,
	}
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the random id generator.
func WithIDGenerator(next func() string) Option {
	return func(s *Store) {
		s.newID = next
	}
}

// WithLogger sets the logger used for persistence and rehydration events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRetryOptions configures how Flush retries a failed save.
func WithRetryOptions(opts service.RetryOptions) Option {
	return func(s *Store) {
		s.retry = opts
	}
}

// Store is the ledger state container. It is safe for concurrent use.
type Store struct {
	persister service.StatePersister
	newID     func() string
	logger    *slog.Logger
	state     State
	retry     service.RetryOptions
	mu        sync.RWMutex
	dirty     bool
}

// Open rehydrates a Store from persister. A missing record, or one that
// cannot be decoded, falls back to the seed data.
func Open(ctx context.Context, persister service.StatePersister, opts ...Option) (*Store, error) {
	if persister == nil {
		return nil, fmt.Errorf("%w: persister is required", common.ErrInvalidInput)
	}

	s := &Store{
		persister: persister,
		newID:     newID,
		logger:    slog.Default(),
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	payload, err := persister.Load(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
		s.logger.Info("No saved ledger found, starting from sample data")
		s.state = SeedState()
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}

	state, version, err := Decode(payload)
	if err != nil {
		s.logger.Warn("Saved ledger is unreadable, starting from sample data", "error", err)
		s.state = SeedState()
		return s, nil
	}
	if version != CurrentVersion {
		s.logger.Info("Migrated saved ledger", "from_version", version, "to_version", CurrentVersion)
	}
	s.state = state
	return s, nil
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Expenses returns a copy of the expenses in collection order.
func (s *Store) Expenses() []model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Expenses)
}

// Categories returns a copy of the categories in collection order.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Categories)
}

// Budgets returns a copy of the budgets in collection order.
func (s *Store) Budgets() []model.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Budgets)
}

// Settings returns the current settings.
func (s *Store) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

// Expense looks up an expense by id.
func (s *Store) Expense(id string) (model.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.Expenses, id, expenseID); i >= 0 {
		return s.state.Expenses[i], nil
	}
	return model.Expense{}, notFound("expense", id)
}

// Category looks up a category by id.
func (s *Store) Category(id string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.Categories, id, categoryID); i >= 0 {
		return s.state.Categories[i], nil
	}
	return model.Category{}, notFound("category", id)
}

// Budget looks up a budget by id.
func (s *Store) Budget(id string) (model.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.Budgets, id, budgetID); i >= 0 {
		return s.state.Budgets[i], nil
	}
	return model.Budget{}, notFound("budget", id)
}

// AddExpense validates n, assigns it a fresh id and appends it.
func (s *Store) AddExpense(ctx context.Context, n model.NewExpense) (model.Expense, error) {
	if err := checkInput(ctx, "expense", n.Validate()); err != nil {
		return model.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := n.WithID(s.newID())
	s.state.Expenses = append(s.state.Expenses, e)
	s.persistLocked(ctx, "add expense")
	return e, nil
}

// UpdateExpense merges patch into the expense with the given id, keeping its
// position.
func (s *Store) UpdateExpense(ctx context.Context, id string, patch model.ExpensePatch) (model.Expense, error) {
	if err := checkInput(ctx, "expense", patch.Validate()); err != nil {
		return model.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.state.Expenses, id, expenseID)
	if i < 0 {
		return model.Expense{}, notFound("expense", id)
	}
	s.state.Expenses[i] = patch.Apply(s.state.Expenses[i])
	if !patch.IsEmpty() {
		s.persistLocked(ctx, "update expense")
	}
	return s.state.Expenses[i], nil
}

// DeleteExpense removes the expense with the given id.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return s.remove(ctx, "expense", func(st *State) bool {
		return deleteByID(&st.Expenses, id, expenseID)
	}, id)
}

// AddCategory validates n, assigns it a fresh id and appends it. Duplicate
// names are allowed.
func (s *Store) AddCategory(ctx context.Context, n model.NewCategory) (model.Category, error) {
	if err := checkInput(ctx, "category", n.Validate()); err != nil {
		return model.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := n.WithID(s.newID())
	s.state.Categories = append(s.state.Categories, c)
	s.persistLocked(ctx, "add category")
	return c, nil
}

// UpdateCategory merges patch into the category with the given id.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (model.Category, error) {
	if err := checkInput(ctx, "category", patch.Validate()); err != nil {
		return model.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.state.Categories, id, categoryID)
	if i < 0 {
		return model.Category{}, notFound("category", id)
	}
	s.state.Categories[i] = patch.Apply(s.state.Categories[i])
	if !patch.IsEmpty() {
		s.persistLocked(ctx, "update category")
	}
	return s.state.Categories[i], nil
}

// DeleteCategory removes the category with the given id. Expenses and
// budgets that reference it are left untouched.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return s.remove(ctx, "category", func(st *State) bool {
		return deleteByID(&st.Categories, id, categoryID)
	}, id)
}

// AddBudget validates n, assigns it a fresh id and appends it.
func (s *Store) AddBudget(ctx context.Context, n model.NewBudget) (model.Budget, error) {
	if err := checkInput(ctx, "budget", n.Validate()); err != nil {
		return model.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := n.WithID(s.newID())
	s.state.Budgets = append(s.state.Budgets, b)
	s.persistLocked(ctx, "add budget")
	return b, nil
}

// UpdateBudget merges patch into the budget with the given id.
func (s *Store) UpdateBudget(ctx context.Context, id string, patch model.BudgetPatch) (model.Budget, error) {
	if err := checkInput(ctx, "budget", patch.Validate()); err != nil {
		return model.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.state.Budgets, id, budgetID)
	if i < 0 {
		return model.Budget{}, notFound("budget", id)
	}
	s.state.Budgets[i] = patch.Apply(s.state.Budgets[i])
	if !patch.IsEmpty() {
		s.persistLocked(ctx, "update budget")
	}
	return s.state.Budgets[i], nil
}

// DeleteBudget removes the budget with the given id.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	return s.remove(ctx, "budget", func(st *State) bool {
		return deleteByID(&st.Budgets, id, budgetID)
	}, id)
}

// UpdateSettings merges patch into the settings.
func (s *Store) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	if err := checkInput(ctx, "settings", patch.Validate()); err != nil {
		return model.Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Settings = patch.Apply(s.state.Settings)
	if !patch.IsEmpty() {
		s.persistLocked(ctx, "update settings")
	}
	return s.state.Settings, nil
}

// ResetToSampleData replaces expenses, categories and budgets with the seed
// data. Settings are kept.
func (s *Store) ResetToSampleData(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seed := SeedState()
	s.state.Expenses = seed.Expenses
	s.state.Categories = seed.Categories
	s.state.Budgets = seed.Budgets
	s.persistLocked(ctx, "reset to sample data")
	return nil
}

// RefreshBudgets sets every budget's Current amount to the spend inside its
// period window containing now. It returns how many budgets changed.
func (s *Store) RefreshBudgets(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i, b := range s.state.Budgets {
		spent := report.PeriodSpend(b, s.state.Expenses, now)
		if spent.Equal(b.Current) {
			continue
		}
		s.state.Budgets[i].Current = spent
		changed++
	}
	if changed > 0 {
		s.persistLocked(ctx, "refresh budgets")
	}
	return changed, nil
}

// Dirty reports whether the last save failed and has not been retried
// successfully.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Flush retries a failed save. It returns nil when nothing is pending.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	payload, err := Encode(s.state)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	err = common.WithRetry(ctx, func() error {
		return s.persister.Save(ctx, payload)
	}, s.retry)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}

	s.dirty = false
	s.logger.Info("Saved pending ledger changes")
	return nil
}

func (s *Store) remove(ctx context.Context, kind string, del func(*State) bool, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !del(&s.state) {
		return notFound(kind, id)
	}
	s.persistLocked(ctx, "delete "+kind)
	return nil
}

// persistLocked saves the state. A failed save leaves the in-memory state in
// place and marks the store dirty for Flush. Callers must hold s.mu.
func (s *Store) persistLocked(ctx context.Context, op string) {
	s.logger.Debug("Ledger mutated", "op", op)

	payload, err := Encode(s.state)
	if err == nil {
		err = s.persister.Save(ctx, payload)
	}
	if err != nil {
		s.dirty = true
		s.logger.Warn("Failed to persist ledger state", "op", op, "error", err)
		return
	}
	s.dirty = false
}

func checkInput(ctx context.Context, kind string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrInvalidInput, kind, err)
	}
	return ctx.Err()
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func expenseID(e model.Expense) string   { return e.ID }
func categoryID(c model.Category) string { return c.ID }
func budgetID(b model.Budget) string     { return b.ID }

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	return slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
}

func deleteByID[T any](items *[]T, id string, idOf func(T) string) bool {
	i := indexOf(*items, id, idOf)
	if i < 0 {
		return false
	}
	*items = slices.Delete(slices.Clone(*items), i, i+1)
	return true
}
