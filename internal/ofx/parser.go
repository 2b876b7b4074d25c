// Package ofx imports bank and credit card statements in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// An opening tag at the end of a line with its closing bracket missing.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// descriptionPrefixes are card-network noise stripped from descriptions.
var descriptionPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// Entry is one debit read from a statement.
type Entry struct {
	Posted      model.Date
	Amount      decimal.Decimal
	FITID       string
	Account     string
	Description string
	Type        string
}

// Expense converts the entry into a new expense in categoryID.
func (e Entry) Expense(categoryID string) model.NewExpense {
	return model.NewExpense{
		Date:        e.Posted,
		Amount:      e.Amount,
		Description: e.Description,
		CategoryID:  categoryID,
	}
}

// Statement is the result of parsing one OFX file.
type Statement struct {
	Entries  []Entry
	Accounts []string
	// Credits counts deposits and refunds, which are not spending.
	Credits int
}

// Expenses converts every entry into a new expense in categoryID.
func (s Statement) Expenses(categoryID string) []model.NewExpense {
	out := make([]model.NewExpense, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, e.Expense(categoryID))
	}
	return out
}

// Parser reads OFX/QFX statements.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new OFX parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Parse reads a statement and returns its debits. Bank and credit card
// statements are both supported; credits are counted and skipped.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) (Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Statement{}, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return Statement{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var stmt Statement
	for _, msg := range resp.Bank {
		bank, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		account := string(bank.BankAcctFrom.AcctID)
		stmt.addAccount(account)
		if bank.BankTranList != nil {
			p.collect(&stmt, bank.BankTranList.Transactions, account)
		}
	}

	for _, msg := range resp.CreditCard {
		card, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		account := string(card.CCAcctFrom.AcctID)
		stmt.addAccount(account)
		if card.BankTranList != nil {
			p.collect(&stmt, card.BankTranList.Transactions, account)
		}
	}

	p.logger.Info("Parsed OFX file",
		"debits", len(stmt.Entries),
		"credits", stmt.Credits,
		"accounts", len(stmt.Accounts))

	return stmt, nil
}

func (s *Statement) addAccount(account string) {
	if account != "" && !slices.Contains(s.Accounts, account) {
		s.Accounts = append(s.Accounts, account)
	}
}

func (p *Parser) collect(stmt *Statement, txns []ofxgo.Transaction, account string) {
	for _, tx := range txns {
		// OFX amounts are negative for money leaving the account.
		amount := decimal.NewFromBigRat(&tx.TrnAmt.Rat, 2)
		if !amount.IsNegative() {
			stmt.Credits++
			continue
		}

		stmt.Entries = append(stmt.Entries, Entry{
			FITID:       string(tx.FiTID),
			Account:     account,
			Posted:      model.DateOf(tx.DtPosted.Time),
			Amount:      amount.Neg(),
			Description: describe(tx),
			Type:        tx.TrnType.String(),
		})
	}
}

// describe picks a clean description for a transaction, preferring the
// payee, then the name, then the memo when the name is generic.
func describe(tx ofxgo.Transaction) string {
	var name string
	if tx.Payee != nil && tx.Payee.Name != "" {
		name = string(tx.Payee.Name)
	} else {
		name = string(tx.Name)
		if tx.Memo != "" && isGenericDescription(name) {
			name = string(tx.Memo)
		}
	}
	name = strings.TrimSpace(name)

	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " posting date.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	if name == "" {
		name = tx.TrnType.String()
	}
	if utf8.RuneCountInString(name) > model.MaxDescriptionLength {
		name = string([]rune(name)[:model.MaxDescriptionLength])
	}
	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	default:
		return false
	}
}
