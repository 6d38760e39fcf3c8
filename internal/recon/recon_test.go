package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gms006/Drogarias/internal/config"
	"github.com/Gms006/Drogarias/internal/model"
)

func testConfig() *config.Company {
	c := config.DefaultCompany()
	c.Fornecedores["ACME"] = 10
	c.ContasPagamento.Set("Banco", 7)
	c.MultasJuros = 50
	c.Descontos = 60
	return c
}

func stmtEntry(date, value string) model.StatementEntry {
	return model.StatementEntry{Date: date, Description: "PAG", Value: value}
}

func ledgerEntry(date, supplier, invoice, gross, discount, fine, payable, fee string) model.LedgerEntry {
	return model.LedgerEntry{
		PaymentDate: date,
		Supplier:    supplier,
		Invoice:     invoice,
		Gross:       gross,
		Discount:    discount,
		Fine:        fine,
		Payable:     payable,
		BoletoFee:   fee,
	}
}

func TestReconcile_MatchedSimple(t *testing.T) {
	res, err := Reconcile(Params{
		Statement: []model.StatementEntry{stmtEntry("01/01/2024", "100,00D")},
		Ledger: []model.LedgerEntry{
			ledgerEntry("01/01/2024", "ACME", "123", "100,00", "0,00", "0,00", "100,00", "0,00"),
		},
		Config: testConfig(),
	})
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Equal(t, 10, line.DebitAccount)
	assert.Equal(t, 7, line.CreditAccount)
	assert.Equal(t, "100,00", line.Value)
	assert.Equal(t, histBankPayment, line.HistCode)
	assert.Equal(t, "123 ACME", line.Complement)
	assert.False(t, line.BatchStart, "single-line batches are never flagged")
	assert.Equal(t, model.SourceBank, line.Source)
	assert.Equal(t, 1, res.Matched)
}

func TestReconcile_UnmatchedStatement(t *testing.T) {
	res, err := Reconcile(Params{
		Statement: []model.StatementEntry{stmtEntry("01/01/2024", "100,00D")},
		Config:    testConfig(),
	})
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Equal(t, defaultSupplierAccount, line.DebitAccount)
	assert.Equal(t, 7, line.CreditAccount)
	assert.Equal(t, "100,00", line.Value)
	assert.Empty(t, line.Complement)
	assert.Equal(t, model.SourceStatement, line.Source)
	assert.Equal(t, 1, res.StatementOnly)
}

func TestReconcile_UnmatchedLedgerComposite(t *testing.T) {
	// Statement debit settles against the default supplier account; the
	// ledger row, which matches nothing, posts as a cash composite.
	res, err := Reconcile(Params{
		Statement: []model.StatementEntry{stmtEntry("01/01/2024", "100,00D")},
		Ledger: []model.LedgerEntry{
			ledgerEntry("01/01/2024", "ACME", "123", "80,00", "10,00", "5,00", "75,00", "2,00"),
		},
		Config: testConfig(),
	})
	require.NoError(t, err)
	require.Len(t, res.Lines, 6, "1 statement-only line + 5 cash composite lines")

	cash := res.Lines[1:]
	assert.True(t, cash[0].BatchStart, "first line of a composite batch is flagged")

	// Gross debited to the supplier with the cash historical code.
	assert.Equal(t, 10, cash[0].DebitAccount)
	assert.Equal(t, "80,00", cash[0].Value)
	assert.Equal(t, histCashPayment, cash[0].HistCode)

	// Fine and fee debits, discount credit.
	assert.Equal(t, 50, cash[1].DebitAccount)
	assert.Equal(t, "5,00", cash[1].Value)
	assert.Equal(t, config.DefaultFeeAccount, cash[2].DebitAccount)
	assert.Equal(t, "2,00", cash[2].Value)
	assert.Equal(t, 60, cash[3].CreditAccount)
	assert.Equal(t, "10,00", cash[3].Value)

	// Cash settlement absorbs the fee: credit is payable + fee.
	last := cash[4]
	assert.Equal(t, cashAccount, last.CreditAccount)
	assert.Equal(t, "77,00", last.Value)
	assert.Equal(t, histCashPayment, last.HistCode)

	for _, l := range cash {
		assert.Equal(t, model.SourceCash, l.Source)
		assert.Equal(t, "123 ACME", l.Complement)
	}
	assert.Equal(t, 1, res.CashSettled)
}

func TestReconcile_MatchedComposite(t *testing.T) {
	// payable = gross - discount + fine + fee, so the batch balances
	// against the statement amount.
	res, err := Reconcile(Params{
		Statement: []model.StatementEntry{stmtEntry("01/01/2024", "97,00D")},
		Ledger: []model.LedgerEntry{
			ledgerEntry("01/01/2024", "ACME", "NF-123", "100,00", "10,00", "5,00", "97,00", "2,00"),
		},
		Config: testConfig(),
	})
	require.NoError(t, err)
	require.Len(t, res.Lines, 5)

	lines := res.Lines
	assert.True(t, lines[0].BatchStart)
	assert.Equal(t, 10, lines[0].DebitAccount)
	assert.Equal(t, "100,00", lines[0].Value)
	assert.Equal(t, 50, lines[1].DebitAccount)
	assert.Equal(t, config.DefaultFeeAccount, lines[2].DebitAccount)
	assert.Equal(t, 60, lines[3].CreditAccount)
	assert.Equal(t, 7, lines[4].CreditAccount)
	assert.Equal(t, "97,00", lines[4].Value, "bank credited for the statement amount")

	for _, l := range lines {
		assert.Equal(t, histBankPayment, l.HistCode)
		assert.Equal(t, "123 ACME", l.Complement, "complement keeps invoice digits only")
	}
}

func TestReconcile_CreditRowsSkipped(t *testing.T) {
	res, err := Reconcile(Params{
		Statement: []model.StatementEntry{
			stmtEntry("02/01/2024", "50,00C"),
			stmtEntry("02/01/2024", "30,00D"),
		},
		Config: testConfig(),
	})
	require.NoError(t, err)
	require.Len(t, res.Lines, 1, "credit rows contribute zero output rows")
	assert.Equal(t, "30,00", res.Lines[0].Value)
	assert.Equal(t, 1, res.SkippedCredits)
}

func TestReconcile_MatchedOnce(t *testing.T) {
	// Two identical statement debits, one ledger row: the second debit
	// must not consume the same ledger row again.
	res, err := Reconcile(Params{
		Statement: []model.StatementEntry{
			stmtEntry("01/01/2024", "100,00D"),
			stmtEntry("01/01/2024", "100,00D"),
		},
		Ledger: []model.LedgerEntry{
			ledgerEntry("01/01/2024", "ACME", "123", "100,00", "", "", "100,00", ""),
		},
		Config: testConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 1, res.StatementOnly)
	assert.Equal(t, 0, res.CashSettled)

	require.Len(t, res.Lines, 2)
	assert.Equal(t, 10, res.Lines[0].DebitAccount, "first debit matches the ledger row")
	assert.Equal(t, defaultSupplierAccount, res.Lines[1].DebitAccount, "second debit falls through")
}

func TestReconcile_FirstMatchWins(t *testing.T) {
	// Duplicate (date, amount) ledger rows pair in input order.
	res, err := Reconcile(Params{
		Statement: []model.StatementEntry{stmtEntry("01/01/2024", "100,00D")},
		Ledger: []model.LedgerEntry{
			ledgerEntry("01/01/2024", "ACME", "111", "100,00", "", "", "100,00", ""),
			ledgerEntry("01/01/2024", "ACME", "222", "100,00", "", "", "100,00", ""),
		},
		Config: testConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, "111 ACME", res.Lines[0].Complement)
	assert.Equal(t, 1, res.CashSettled, "second duplicate settles in cash")
}

func TestReconcile_BlankEqualsZero(t *testing.T) {
	run := func(discount, fine, fee string) []model.PostingLine {
		res, err := Reconcile(Params{
			Statement: []model.StatementEntry{stmtEntry("01/01/2024", "100,00D")},
			Ledger: []model.LedgerEntry{
				ledgerEntry("01/01/2024", "ACME", "123", "100,00", discount, fine, "100,00", fee),
			},
			Config: testConfig(),
		})
		require.NoError(t, err)
		return res.Lines
	}

	assert.Equal(t, run("0,00", "0,00", "0,00"), run("", "nan", ""))
}

func TestReconcile_Deterministic(t *testing.T) {
	params := Params{
		Statement: []model.StatementEntry{
			stmtEntry("01/01/2024", "100,00D"),
			stmtEntry("02/01/2024", "25,50D"),
			stmtEntry("02/01/2024", "10,00C"),
		},
		Ledger: []model.LedgerEntry{
			ledgerEntry("01/01/2024", "ACME", "123", "100,00", "", "", "100,00", ""),
			ledgerEntry("03/01/2024", "Beta Ltda", "456", "80,00", "10,00", "5,00", "75,00", "2,00"),
		},
		Config: testConfig(),
	}

	first, err := Reconcile(params)
	require.NoError(t, err)
	second, err := Reconcile(params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReconcile_InputsNotMutated(t *testing.T) {
	ledger := []model.LedgerEntry{
		ledgerEntry("01/01/2024", "ACME", "123", "100,00", "", "", "100,00", ""),
	}
	before := ledger[0]

	_, err := Reconcile(Params{
		Statement: []model.StatementEntry{stmtEntry("01/01/2024", "100,00D")},
		Ledger:    ledger,
		Config:    testConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, before, ledger[0])
}

func TestReconcile_BankAccountOverride(t *testing.T) {
	res, err := Reconcile(Params{
		Statement:   []model.StatementEntry{stmtEntry("01/01/2024", "100,00D")},
		Config:      testConfig(),
		BankAccount: 99,
	})
	require.NoError(t, err)
	assert.Equal(t, 99, res.Lines[0].CreditAccount)
}

func TestReconcile_UnknownSupplierFallsBack(t *testing.T) {
	res, err := Reconcile(Params{
		Statement: []model.StatementEntry{stmtEntry("01/01/2024", "100,00D")},
		Ledger: []model.LedgerEntry{
			ledgerEntry("01/01/2024", "Desconhecida", "9", "100,00", "", "", "100,00", ""),
		},
		Config: testConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, defaultSupplierAccount, res.Lines[0].DebitAccount)
}

func TestReconcile_MalformedAmountAborts(t *testing.T) {
	_, err := Reconcile(Params{
		Statement: []model.StatementEntry{stmtEntry("01/01/2024", "abcD")},
		Config:    testConfig(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement row 1")
}

func TestReconcile_UnbalancedAborts(t *testing.T) {
	// A matched composite where the statement amount does not cover
	// gross + fine + fee - discount must fail, with no partial output.
	res, err := Reconcile(Params{
		Statement: []model.StatementEntry{stmtEntry("01/01/2024", "75,00D")},
		Ledger: []model.LedgerEntry{
			ledgerEntry("01/01/2024", "ACME", "123", "80,00", "10,00", "5,00", "75,00", "2,00"),
		},
		Config: testConfig(),
	})
	require.Error(t, err)
	assert.Nil(t, res)

	var ube *UnbalancedBatchError
	require.ErrorAs(t, err, &ube)
}
