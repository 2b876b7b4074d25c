package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpensesLifecycle(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("expenses", "add",
		"--amount", "12.5",
		"--description", "Bus pass",
		"--category", "cat4",
		"--date", "2023-05-30")
	assert.Contains(t, out, "Added expense")
	assert.Contains(t, out, "Bus pass RM12.50 on 2023-05-30")

	out = env.mustRun("expenses", "list", "--search", "bus")
	assert.Contains(t, out, "Bus pass")
	assert.Contains(t, out, "Transportation")
	assert.Contains(t, out, "1 expense(s), total RM12.50")

	out = env.mustRun("expenses", "update", "exp15", "--amount", "20", "--recurring")
	assert.Contains(t, out, "Updated expense exp15: Coffee and cake RM20.00 on 2023-05-29")

	out = env.mustRun("expenses", "list", "--category", "cat8")
	assert.Contains(t, out, "Coffee shop")
	assert.Contains(t, out, "↻")
	assert.Contains(t, out, "2 expense(s), total RM62.30")
	assert.NotContains(t, out, "Rent payment")

	out = env.mustRun("expenses", "delete", "exp15")
	assert.Contains(t, out, "Deleted expense exp15")

	out = env.mustRun("expenses", "list", "--category", "cat8")
	assert.NotContains(t, out, "Coffee and cake")
	assert.Contains(t, out, "1 expense(s), total RM42.30")
}

func TestExpensesListOptions(t *testing.T) {
	env := newTestEnv(t)

	t.Run("limit and sort", func(t *testing.T) {
		out := env.mustRun("expenses", "list", "--sort", "amount-desc", "-n", "2")
		assert.Contains(t, out, "Rent payment")
		assert.Contains(t, out, "Flight tickets")
		assert.NotContains(t, out, "Coffee and cake")
		assert.Contains(t, out, "2 expense(s), total RM1750.00")
	})

	t.Run("by month", func(t *testing.T) {
		out := env.mustRun("expenses", "list", "--by-month")
		assert.Contains(t, out, "May 2023")
	})

	t.Run("no matches", func(t *testing.T) {
		out := env.mustRun("expenses", "list", "--search", "yacht")
		assert.Contains(t, out, "No expenses found")
	})

	t.Run("bad sort order", func(t *testing.T) {
		_, _, err := env.run("", "expenses", "list", "--sort", "random")
		require.Error(t, err)
		userMessage(t, err)
	})
}

func TestExpensesErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "unknown category",
			args: []string{"expenses", "add", "--amount", "5", "--description", "Tea", "--category", "cat99"},
			want: `No category with id "cat99"`,
		},
		{
			name: "bad amount",
			args: []string{"expenses", "add", "--amount", "five", "--description", "Tea", "--category", "cat8"},
			want: "--amount",
		},
		{
			name: "exponent amount",
			args: []string{"expenses", "add", "--amount", "1e999999999", "--description", "Tea", "--category", "cat8"},
			want: "must be an unsigned number",
		},
		{
			name: "bad date",
			args: []string{"expenses", "add", "--amount", "5", "--description", "Tea", "--category", "cat8", "--date", "31/05/2023"},
			want: "--date",
		},
		{
			name: "update missing expense",
			args: []string{"expenses", "update", "nope", "--amount", "5"},
			want: `No expense with id "nope"`,
		},
		{
			name: "update without fields",
			args: []string{"expenses", "update", "exp1"},
			want: "Nothing to update",
		},
		{
			name: "delete missing expense",
			args: []string{"expenses", "delete", "nope"},
			want: `No expense with id "nope"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run("", tt.args...)
			require.Error(t, err)
			assert.Contains(t, userMessage(t, err), tt.want)
		})
	}

	t.Run("missing required flag", func(t *testing.T) {
		_, _, err := env.run("", "expenses", "add", "--amount", "5")
		assert.Error(t, err)
	})
}
