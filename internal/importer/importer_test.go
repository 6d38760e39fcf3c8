package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows to a single-sheet xlsx in memory.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestReadStatement(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Data", "Histórico", "Valor"},
		{"01/01/2024", "PAG BOLETO", "100,00D"},
		{"02/01/2024", "PIX RECEBIDO", "50,00C"},
	})

	entries, err := ReadStatement(r)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "01/01/2024", entries[0].Date)
	assert.Equal(t, "PAG BOLETO", entries[0].Description)
	assert.Equal(t, "100,00D", entries[0].Value)
	assert.Equal(t, "50,00C", entries[1].Value)
}

func TestReadStatement_AccentInsensitiveHeaders(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"DATA", "HISTORICO", "VALOR"},
		{"01/01/2024", "PAG", "10,00D"},
	})

	entries, err := ReadStatement(r)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReadStatement_HeaderNotOnFirstRow(t *testing.T) {
	// Bank exports often carry a title block above the table.
	r := buildWorkbook(t, [][]interface{}{
		{"Extrato Conta Corrente"},
		{},
		{"Data", "Histórico", "Valor"},
		{"01/01/2024", "PAG", "10,00D"},
	})

	entries, err := ReadStatement(r)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReadStatement_MissingColumn(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Data", "Valor"},
		{"01/01/2024", "10,00D"},
	})

	_, err := ReadStatement(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestReadStatement_SkipsBlankRows(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Data", "Histórico", "Valor"},
		{"01/01/2024", "PAG", "10,00D"},
		{},
		{"", "", ""},
	})

	entries, err := ReadStatement(r)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReadLedger(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Data pagamento", "Nome do fornecedor", "Nota fiscal", "Valor", "Descontos", "Multa e juros", "Valor a pagar", "Tarifas de Boleto"},
		{"01/01/2024", "ACME", "123", "80,00", "10,00", "5,00", "75,00", "2,00"},
		{"02/01/2024", "Beta Ltda", "456", "100,00", "", "", "100,00", ""},
	})

	entries, err := ReadLedger(r)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "ACME", entries[0].Supplier)
	assert.Equal(t, "123", entries[0].Invoice)
	assert.Equal(t, "80,00", entries[0].Gross)
	assert.Equal(t, "10,00", entries[0].Discount)
	assert.Equal(t, "5,00", entries[0].Fine)
	assert.Equal(t, "75,00", entries[0].Payable)
	assert.Equal(t, "2,00", entries[0].BoletoFee)

	// Short rows read as blank cells, which the engine treats as zero.
	assert.Equal(t, "", entries[1].Discount)
	assert.Equal(t, "", entries[1].BoletoFee)
}

func TestReadLedger_MissingColumn(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Data pagamento", "Nome do fornecedor", "Valor a pagar"},
	})

	_, err := ReadLedger(r)
	require.Error(t, err)
}

func TestRead_NotAWorkbook(t *testing.T) {
	_, err := ReadStatement(bytes.NewReader([]byte("not an xlsx")))
	require.Error(t, err)
}
