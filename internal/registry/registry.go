// Package registry stores per-company account registries as
// contas_config_<CNPJ>.json files in a data directory and exposes the
// CRUD operations the CLI works through.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Gms006/Drogarias/internal/cnpj"
	"github.com/Gms006/Drogarias/internal/config"
	"github.com/Gms006/Drogarias/internal/gitops"
)

const filePrefix = "contas_config_"

// Special-account field names accepted by SetSpecialAccount.
const (
	FieldFines     = "multas_juros"
	FieldDiscounts = "descontos"
	FieldFees      = "tarifas"
)

// Store manages company registries under one data directory. When git
// auto-commit is on and the directory is a repository, every save is
// committed.
type Store struct {
	dataDir string
	git     config.GitSettings
}

// NewStore creates a Store over dataDir.
func NewStore(dataDir string, git config.GitSettings) *Store {
	return &Store{dataDir: dataDir, git: git}
}

// DataDir returns the directory the store works in.
func (s *Store) DataDir() string { return s.dataDir }

func (s *Store) path(id string) string {
	return filepath.Join(s.dataDir, filePrefix+cnpj.Normalize(id)+".json")
}

// Companies lists the CNPJs that have a registry file, sorted.
func (s *Store) Companies() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dataDir, filePrefix+"*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing registries: %w", err)
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		base := strings.TrimSuffix(filepath.Base(m), ".json")
		ids = append(ids, strings.TrimPrefix(base, filePrefix))
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads a company registry. A missing registry is created with the
// default skeleton, matching how first access has always behaved.
func (s *Store) Load(id string) (*config.Company, error) {
	if !cnpj.Valid(id) {
		return nil, fmt.Errorf("invalid CNPJ %q", id)
	}
	path := s.path(id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c := config.DefaultCompany()
		if err := s.Save(id, c); err != nil {
			return nil, err
		}
		return c, nil
	}
	return config.LoadCompany(path)
}

// Save writes a company registry and, when configured, commits the data
// directory.
func (s *Store) Save(id string, c *config.Company) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := config.SaveCompany(s.path(id), c); err != nil {
		return err
	}
	if s.git.AutoCommit && gitops.IsRepo(s.dataDir) {
		msg := fmt.Sprintf("registry: update %s", cnpj.Format(id))
		if _, err := gitops.CommitAll(s.dataDir, msg, s.git.AuthorName, s.git.AuthorEmail); err != nil {
			return fmt.Errorf("committing registry: %w", err)
		}
	}
	return nil
}

// AddSupplier maps a supplier name to a debit account code.
func (s *Store) AddSupplier(id, name string, code int) error {
	c, err := s.Load(id)
	if err != nil {
		return err
	}
	c.Fornecedores[name] = code
	return s.Save(id, c)
}

// EditSupplier updates an existing supplier mapping.
func (s *Store) EditSupplier(id, name string, code int) error {
	c, err := s.Load(id)
	if err != nil {
		return err
	}
	if _, ok := c.Fornecedores[name]; !ok {
		return fmt.Errorf("supplier %q not found", name)
	}
	c.Fornecedores[name] = code
	return s.Save(id, c)
}

// DeleteSupplier removes a supplier mapping.
func (s *Store) DeleteSupplier(id, name string) error {
	c, err := s.Load(id)
	if err != nil {
		return err
	}
	if _, ok := c.Fornecedores[name]; !ok {
		return fmt.Errorf("supplier %q not found", name)
	}
	delete(c.Fornecedores, name)
	return s.Save(id, c)
}

// AddPaymentAccount maps a payment account name to its code. The first
// account ever added becomes the default bank account.
func (s *Store) AddPaymentAccount(id, name string, code int) error {
	c, err := s.Load(id)
	if err != nil {
		return err
	}
	c.ContasPagamento.Set(name, code)
	return s.Save(id, c)
}

// DeletePaymentAccount removes a payment account mapping.
func (s *Store) DeletePaymentAccount(id, name string) error {
	c, err := s.Load(id)
	if err != nil {
		return err
	}
	if !c.ContasPagamento.Delete(name) {
		return fmt.Errorf("payment account %q not found", name)
	}
	return s.Save(id, c)
}

// SetSpecialAccount sets one of the special account codes
// (multas_juros, descontos, tarifas).
func (s *Store) SetSpecialAccount(id, field string, code int) error {
	c, err := s.Load(id)
	if err != nil {
		return err
	}
	switch field {
	case FieldFines:
		c.MultasJuros = code
	case FieldDiscounts:
		c.Descontos = code
	case FieldFees:
		c.Tarifas = &code
	default:
		return fmt.Errorf("invalid field %q (want %s, %s, or %s)", field, FieldFines, FieldDiscounts, FieldFees)
	}
	return s.Save(id, c)
}
