package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkingOFX = `OFXHEADER:100
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
<NAME>Bean There Cafe
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
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func writeStatement(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportOFX(t *testing.T) {
	env := newTestEnv(t)
	statement := writeStatement(t, "checking.ofx", checkingOFX)

	t.Run("dry run", func(t *testing.T) {
		out := env.mustRun("import", "ofx", statement, "--category", "cat1", "--dry-run")
		assert.Contains(t, out, "Whole Foods Market")
		assert.Contains(t, out, "2024-01-20")
		assert.Contains(t, out, "Would import 2 expense(s) totalling RM150.50 (1 credit(s) skipped)")

		out = env.mustRun("expenses", "list", "--search", "whole foods")
		assert.Contains(t, out, "No expenses found")
	})

	t.Run("import", func(t *testing.T) {
		out := env.mustRun("import", "ofx", statement, "-c", "cat1")
		assert.Contains(t, out, "Imported 2 expense(s), skipped 1 credit(s)")

		out = env.mustRun("expenses", "list", "--category", "cat1", "--sort", "date-asc")
		assert.Contains(t, out, "Bean There Cafe")
		assert.Contains(t, out, "Whole Foods Market")
		assert.Contains(t, out, "5 expense(s), total RM315.71")

		out = env.mustRun("report", "months")
		assert.Contains(t, out, "Jan 2024")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, _, err := env.run("", "import", "ofx", statement, "-c", "cat99")
		require.Error(t, err)
		assert.Contains(t, userMessage(t, err), `No category with id "cat99"`)
	})

	t.Run("unreadable statement", func(t *testing.T) {
		_, _, err := env.run("", "import", "ofx", filepath.Join(t.TempDir(), "missing.ofx"), "-c", "cat1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open")

		garbage := writeStatement(t, "garbage.ofx", "not an ofx file")
		_, _, err = env.run("", "import", "ofx", garbage, "-c", "cat1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}
