package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/model"
)

const (
	// RecordKey names the persisted record holding the ledger state.
	RecordKey = "expense-store"
	// CurrentVersion is the envelope version written by Encode.
	CurrentVersion = 1
)

var (
	// ErrUnsupportedVersion is returned for envelopes newer than CurrentVersion.
	ErrUnsupportedVersion = errors.New("unsupported state version")
	// ErrCorruptState is returned when a payload cannot be decoded.
	ErrCorruptState = errors.New("corrupt state")
)

type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// migration upgrades a raw state from version N to N+1.
type migration func(json.RawMessage) (json.RawMessage, error)

// migrations is indexed by the version a migration upgrades from.
var migrations = []migration{
	0: migrateV0,
}

// Encode wraps state in a versioned envelope.
func Encode(state State) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return json.Marshal(envelope{Version: CurrentVersion, State: raw})
}

// Decode unwraps an envelope, migrating older versions forward. It returns
// the decoded state and the version it was stored with.
func Decode(payload []byte) (State, int, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return State{}, 0, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if env.Version < 0 || env.Version > CurrentVersion {
		return State{}, env.Version, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if len(env.State) == 0 || string(env.State) == "null" {
		return State{}, env.Version, fmt.Errorf("%w: missing state", ErrCorruptState)
	}

	raw := env.State
	for v := env.Version; v < CurrentVersion; v++ {
		var err error
		if raw, err = migrations[v](raw); err != nil {
			return State{}, env.Version, fmt.Errorf("failed to migrate state from version %d: %w", v, err)
		}
	}

	state := State{Settings: model.DefaultSettings()}
	if err := json.Unmarshal(raw, &state); err != nil {
		return State{}, env.Version, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if err := checkBudgets(state.Budgets); err != nil {
		return State{}, env.Version, err
	}
	state.Settings = state.Settings.Normalize()
	return state, env.Version, nil
}

// checkBudgets rejects budgets whose period or amounts cannot be reported on.
func checkBudgets(budgets []model.Budget) error {
	for _, b := range budgets {
		if !b.Period.Valid() {
			return fmt.Errorf("%w: budget %q has unknown period %q", ErrCorruptState, b.ID, b.Period)
		}
		if b.Amount.IsNegative() || b.Current.IsNegative() {
			return fmt.Errorf("%w: budget %q has a negative amount", ErrCorruptState, b.ID)
		}
	}
	return nil
}

// Version 0 is the unversioned layout: expenses and budgets reference their
// category through "category", and settings may be partial.
type legacyState struct {
	Settings   legacySettings   `json:"settings"`
	Expenses   []legacyExpense  `json:"expenses"`
	Categories []model.Category `json:"categories"`
	Budgets    []legacyBudget   `json:"budgets"`
}

type legacyExpense struct {
	Date        model.Date      `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	IsRecurring bool            `json:"isRecurring"`
}

type legacyBudget struct {
	Amount   decimal.Decimal `json:"amount"`
	Current  decimal.Decimal `json:"current"`
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Period   model.Period    `json:"period"`
	Category string          `json:"category"`
}

type legacySettings struct {
	Currency *model.Currency `json:"currency"`
	Theme    *model.Theme    `json:"theme"`
	Language *string         `json:"language"`
}

func migrateV0(raw json.RawMessage) (json.RawMessage, error) {
	var old legacyState
	if err := json.Unmarshal(raw, &old); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	state := State{
		Categories: old.Categories,
		Settings: model.SettingsPatch{
			Currency: old.Settings.Currency,
			Theme:    old.Settings.Theme,
			Language: old.Settings.Language,
		}.Apply(model.DefaultSettings()),
	}
	for _, e := range old.Expenses {
		state.Expenses = append(state.Expenses, model.Expense{
			ID:          e.ID,
			Amount:      e.Amount,
			Description: e.Description,
			CategoryID:  e.Category,
			Date:        e.Date,
			Recurring:   e.IsRecurring,
		})
	}
	for _, b := range old.Budgets {
		state.Budgets = append(state.Budgets, model.Budget{
			ID:         b.ID,
			Name:       b.Name,
			Amount:     b.Amount,
			Current:    b.Current,
			Period:     b.Period,
			CategoryID: b.Category,
		})
	}

	return json.Marshal(state)
}
