// Package runlog keeps an append-only CSV audit trail of reconciliation
// runs under the data directory.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp      time.Time
	Company        string
	StatementRows  int
	LedgerRows     int
	Matched        int
	StatementOnly  int
	CashSettled    int
	SkippedCredits int
	Lines          int
	Output         string
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,company,statement_rows,ledger_rows,matched,statement_only,cash_settled,skipped_credits,lines,output"

const (
	numFields = 10
	logDir    = "logs"
	logFile   = "logs/run-log.csv"
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	return []string{
		e.Timestamp.Format(time.RFC3339),
		e.Company,
		strconv.Itoa(e.StatementRows),
		strconv.Itoa(e.LedgerRows),
		strconv.Itoa(e.Matched),
		strconv.Itoa(e.StatementOnly),
		strconv.Itoa(e.CashSettled),
		strconv.Itoa(e.SkippedCredits),
		strconv.Itoa(e.Lines),
		e.Output,
	}
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[0])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[0], err)
	}

	counts := make([]int, 7)
	for i := range counts {
		counts[i], err = strconv.Atoi(record[i+2])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[i+2], err)
		}
	}

	return Entry{
		Timestamp:      ts,
		Company:        record[1],
		StatementRows:  counts[0],
		LedgerRows:     counts[1],
		Matched:        counts[2],
		StatementOnly:  counts[3],
		CashSettled:    counts[4],
		SkippedCredits: counts[5],
		Lines:          counts[6],
		Output:         record[9],
	}, nil
}

// Append writes entries to <dataDir>/logs/run-log.csv, creating the file
// and header if needed.
func Append(dataDir string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(dataDir, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return cw.Error()
}

// Read returns all entries from <dataDir>/logs/run-log.csv. A missing
// file reads as empty.
func Read(dataDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dataDir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
