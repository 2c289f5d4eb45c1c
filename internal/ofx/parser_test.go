package ofx

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
<TRNTYPE>CREDIT
<DTPOSTED>20240118120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024011801
<NAME>PAYROLL DEPOSIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>POS PURCHASE Whole Foods Market
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

func TestParser_Parse(t *testing.T) {
	parser := NewParser()

	txns, err := parser.ParseReader(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	// Money out becomes a positive-amount debit.
	assert.Equal(t, "2024011501", txns[0].ID)
	assert.Equal(t, "STARBUCKS STORE #1234", txns[0].Description)
	assert.Equal(t, model.TypeDebit, txns[0].Type)
	assert.InDelta(t, 25.50, txns[0].Amount, 0.001)
	assert.Equal(t, "1234567890", txns[0].AccountID)
	assert.NotEmpty(t, txns[0].Hash)

	// Money in becomes a credit.
	assert.Equal(t, model.TypeCredit, txns[1].Type)
	assert.InDelta(t, 1500.00, txns[1].Amount, 0.001)
	assert.Equal(t, model.NatureIncome, txns[1].ResolveNature())

	// Generic POS prefix is stripped from the description.
	assert.Equal(t, "Whole Foods Market", txns[2].Description)
}

func TestParser_ParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.ofx")
	require.NoError(t, os.WriteFile(path, []byte(sampleBankOFX), 0600))

	parser := NewParser()
	txns, err := parser.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, txns, 3)

	_, err = parser.Parse(context.Background(), filepath.Join(t.TempDir(), "missing.ofx"))
	assert.Error(t, err)
}

func TestParser_ParseInvalidContent(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseReader(context.Background(), strings.NewReader("not an ofx file"))
	assert.Error(t, err)
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase severity upcased",
			input: "<SEVERITY>Info</SEVERITY>",
			want:  "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:  "missing closing bracket added",
			input: "<BANKID",
			want:  "<BANKID>",
		},
		{
			name:  "leading whitespace trimmed",
			input: "\n\n  OFXHEADER:100",
			want:  "OFXHEADER:100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.preprocessOFX(tt.input))
		})
	}
}
