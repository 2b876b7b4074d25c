package tui

import "github.com/Veraticus/spend/internal/report"

type ledgerLoadedMsg struct {
	ledger report.Ledger
}

type budgetsRefreshedMsg struct {
	err     error
	changed int
}
