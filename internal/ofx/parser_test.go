package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spend/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240122120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024012201
<NAME>PAYROLL DEPOSIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 3,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(nil)

			stmt, err := parser.Parse(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, stmt.Entries, tt.expectedCount)
		})
	}
}

func TestParse_BankStatement(t *testing.T) {
	stmt, err := NewParser(nil).Parse(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, stmt.Entries, 3)

	assert.Equal(t, 1, stmt.Credits, "payroll deposit is skipped")
	assert.Equal(t, []string{"1234567890"}, stmt.Accounts)

	first := stmt.Entries[0]
	assert.Equal(t, "2024011501", first.FITID)
	assert.Equal(t, "STARBUCKS STORE #1234", first.Description)
	assert.True(t, decimal.RequireFromString("25.50").Equal(first.Amount))
	assert.Equal(t, "1234567890", first.Account)
	assert.Equal(t, model.NewDate(2024, time.January, 15), first.Posted)
	assert.Equal(t, "DEBIT", first.Type)

	assert.True(t, decimal.RequireFromString("125").Equal(stmt.Entries[1].Amount))

	check := stmt.Entries[2]
	assert.Equal(t, "CHECK #1234", check.Description)
	assert.Equal(t, "CHECK", check.Type)
	assert.True(t, decimal.RequireFromString("500").Equal(check.Amount))
}

func TestParse_CreditCardStatement(t *testing.T) {
	stmt, err := NewParser(nil).Parse(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, stmt.Entries, 2)

	assert.Equal(t, []string{"4111111111111111"}, stmt.Accounts)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", stmt.Entries[0].Description)
	assert.True(t, decimal.RequireFromString("45.99").Equal(stmt.Entries[0].Amount))
	assert.Equal(t, model.NewDate(2024, time.January, 15), stmt.Entries[1].Posted)
}

func TestParse_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(nil).Parse(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatementExpenses(t *testing.T) {
	stmt, err := NewParser(nil).Parse(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)

	expenses := stmt.Expenses("cat2")
	require.Len(t, expenses, 2)
	for _, e := range expenses {
		assert.Equal(t, "cat2", e.CategoryID)
		assert.False(t, e.Recurring)
		assert.NoError(t, e.Validate())
	}
	assert.Equal(t, "NETFLIX.COM", expenses[1].Description)
}

func TestPreprocessOFX(t *testing.T) {
	in := "\n\n  <OFX>\n<SEVERITY>Info</SEVERITY>\n<CODE\n"
	out := preprocessOFX(in)

	assert.True(t, strings.HasPrefix(out, "<OFX>"))
	assert.Contains(t, out, "<SEVERITY>INFO</SEVERITY>")
	assert.Contains(t, out, "<CODE>\n")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{
			name:     "remove POS prefix",
			tx:       ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"},
			expected: "STARBUCKS",
		},
		{
			name:     "remove DEBIT CARD prefix",
			tx:       ofxgo.Transaction{Name: "DEBIT CARD PURCHASE WHOLE FOODS"},
			expected: "WHOLE FOODS",
		},
		{
			name:     "strip posting date",
			tx:       ofxgo.Transaction{Name: "03/14 CORNER BAKERY"},
			expected: "CORNER BAKERY",
		},
		{
			name:     "keep clean name",
			tx:       ofxgo.Transaction{Name: "NETFLIX.COM"},
			expected: "NETFLIX.COM",
		},
		{
			name:     "trim whitespace",
			tx:       ofxgo.Transaction{Name: "  AMAZON.COM  "},
			expected: "AMAZON.COM",
		},
		{
			name:     "payee wins",
			tx:       ofxgo.Transaction{Name: "PURCHASE", Payee: &ofxgo.Payee{Name: "Corner Cafe"}},
			expected: "Corner Cafe",
		},
		{
			name:     "memo replaces generic name",
			tx:       ofxgo.Transaction{Name: "PAYMENT", Memo: "City Water"},
			expected: "City Water",
		},
		{
			name:     "empty falls back to type",
			tx:       ofxgo.Transaction{TrnType: ofxgo.TrnTypeATM},
			expected: "ATM",
		},
		{
			name:     "long names are truncated",
			tx:       ofxgo.Transaction{Name: ofxgo.String(strings.Repeat("x", model.MaxDescriptionLength+20))},
			expected: strings.Repeat("x", model.MaxDescriptionLength),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, describe(tt.tx))
		})
	}
}
