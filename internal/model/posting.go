package model

// Source tags where a posting batch came from. It is internal bookkeeping
// and is dropped before any user-facing export.
type Source string

const (
	// SourceBank marks batches settled against the bank account (matched).
	SourceBank Source = "Banco"
	// SourceCash marks batches assumed paid in cash (unmatched ledger rows).
	SourceCash Source = "Caixa"
	// SourceStatement marks statement debits with no ledger counterpart.
	SourceStatement Source = "Extrato"
)

// PostingLine is one debit-or-credit row of the reconciliation output.
// A simple batch is a single line carrying both sides; composite batches
// spread the sides over several one-sided lines that balance as a group.
type PostingLine struct {
	Date          string // canonical "dd/mm/yyyy"
	DebitAccount  int    // 0 = side not used
	CreditAccount int    // 0 = side not used
	Value         string // two decimals, comma separator, e.g. "1234,56"
	HistCode      int
	Complement    string
	BatchStart    bool
	Source        Source
}
