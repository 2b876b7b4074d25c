package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spend/internal/model"
)

const legacyPayload = `{
  "state": {
    "expenses": [
      {"id": "exp1", "amount": 45.99, "description": "Grocery shopping", "category": "cat1", "date": "2023-05-01"},
      {"id": "k3j9", "amount": 1200, "description": "Rent payment", "category": "cat3", "date": "2023-05-01T00:00:00.000Z", "isRecurring": true}
    ],
    "categories": [
      {"id": "cat1", "name": "Food & Dining", "color": "#FF6B6B", "icon": "Utensils", "budget": 500}
    ],
    "budgets": [
      {"id": "budget1", "name": "Monthly Spending", "amount": 3000, "current": 2754.09, "period": "monthly"},
      {"id": "budget2", "name": "Food", "amount": 500, "current": 165.21, "period": "monthly", "category": "cat1"}
    ],
    "settings": {"currency": "USD"}
  },
  "version": 0
}`

func TestDecodeMigratesLegacyLayout(t *testing.T) {
	state, version, err := Decode([]byte(legacyPayload))
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	require.Len(t, state.Expenses, 2)
	assert.Equal(t, "cat1", state.Expenses[0].CategoryID)
	assert.Equal(t, "Grocery shopping", state.Expenses[0].Description)
	assert.False(t, state.Expenses[0].Recurring)
	assert.True(t, decimal.RequireFromString("45.99").Equal(state.Expenses[0].Amount))
	assert.True(t, state.Expenses[1].Recurring)
	assert.Equal(t, model.NewDate(2023, time.May, 1), state.Expenses[1].Date)

	require.Len(t, state.Budgets, 2)
	assert.True(t, state.Budgets[0].Overall())
	assert.Equal(t, "cat1", state.Budgets[1].CategoryID)
	assert.True(t, decimal.RequireFromString("2754.09").Equal(state.Budgets[0].Current))

	require.Len(t, state.Categories, 1)
	assert.Equal(t, model.IconUtensils, state.Categories[0].Icon)

	// Missing settings fields take their defaults.
	assert.Equal(t, model.Settings{Currency: model.CurrencyUSD, Theme: model.ThemeLight, Language: "en"}, state.Settings)
}

func TestDecodeWithoutVersionIsLegacy(t *testing.T) {
	payload := `{"state":{"expenses":[{"id":"a","amount":1,"description":"x","category":"cat2","date":"2024-01-02"}]}}`
	state, version, err := Decode([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 0, version)
	require.Len(t, state.Expenses, 1)
	assert.Equal(t, "cat2", state.Expenses[0].CategoryID)
	assert.Equal(t, model.DefaultSettings(), state.Settings)
}

func TestEncodeDecodeCurrentVersion(t *testing.T) {
	seed := SeedState()
	payload, err := Encode(seed)
	require.NoError(t, err)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &env))
	assert.JSONEq(t, `1`, string(env["version"]))
	assert.Contains(t, string(env["state"]), `"categoryId":"cat1"`)
	assert.Contains(t, string(env["state"]), `"date":"2023-05-01"`)

	decoded, version, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, version)
	require.Len(t, decoded.Expenses, len(seed.Expenses))
	for i := range seed.Expenses {
		assert.Equal(t, seed.Expenses[i].ID, decoded.Expenses[i].ID)
		assert.True(t, seed.Expenses[i].Amount.Equal(decoded.Expenses[i].Amount))
		assert.Equal(t, seed.Expenses[i].Date, decoded.Expenses[i].Date)
	}
	assert.Equal(t, seed.Settings, decoded.Settings)
}

func TestDecodeRejects(t *testing.T) {
	_, _, err := Decode([]byte(`{"version":2,"state":{}}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, _, err = Decode([]byte(`[]`))
	assert.ErrorIs(t, err, ErrCorruptState)

	_, _, err = Decode([]byte(`{"version":0,"state":{"expenses":[{"amount":"abc"}]}}`))
	assert.ErrorIs(t, err, ErrCorruptState)

	_, _, err = Decode([]byte(`{"version":1,"state":{"budgets":[{"id":"b1","name":"Rent","amount":"100","current":"0","period":"fortnightly"}]}}`))
	assert.ErrorIs(t, err, ErrCorruptState)
	assert.Contains(t, err.Error(), `"fortnightly"`)

	_, _, err = Decode([]byte(`{"version":1,"state":{"budgets":[{"id":"b1","name":"Rent","amount":"-5","current":"0","period":"monthly"}]}}`))
	assert.ErrorIs(t, err, ErrCorruptState)

	_, _, err = Decode([]byte(`{"version":0,"state":{"budgets":[{"id":"b1","name":"Rent","amount":100,"current":0,"period":"quarterly"}]}}`))
	assert.ErrorIs(t, err, ErrCorruptState)
}

func TestDecodeNormalizesSettings(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    model.Settings
	}{
		{
			name:    "unknown currency",
			payload: `{"version":1,"state":{"settings":{"currency":"XYZ","theme":"dark","language":"ms"}}}`,
			want:    model.Settings{Currency: model.CurrencyMYR, Theme: model.ThemeDark, Language: "ms"},
		},
		{
			name:    "unknown theme",
			payload: `{"version":1,"state":{"settings":{"currency":"USD","theme":"solarized","language":"en"}}}`,
			want:    model.Settings{Currency: model.CurrencyUSD, Theme: model.ThemeLight, Language: "en"},
		},
		{
			name:    "bad language",
			payload: `{"version":1,"state":{"settings":{"currency":"EUR","theme":"light","language":""}}}`,
			want:    model.Settings{Currency: model.CurrencyEUR, Theme: model.ThemeLight, Language: "en"},
		},
		{
			name:    "legacy unknown currency",
			payload: `{"state":{"settings":{"currency":"BTC"}}}`,
			want:    model.DefaultSettings(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, _, err := Decode([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, state.Settings)
		})
	}
}
