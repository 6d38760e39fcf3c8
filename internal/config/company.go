// Package config holds the per-company account registry (JSON, one file
// per CNPJ) and the application settings file (YAML).
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Account-code defaults applied when a registry key is absent. A sparse
// registry is an expected condition, not an error.
const (
	DefaultFeeAccount = 316
)

// Company is one company's reconciliation registry: supplier and payment
// account mappings plus the special accounts for fines, discounts, and
// boleto fees. The engine reads it, never writes it.
type Company struct {
	Fornecedores    map[string]int  `json:"fornecedores"`
	ContasPagamento PaymentAccounts `json:"contas_pagamento"`
	MultasJuros     int             `json:"multas_juros"`
	Tarifas         *int            `json:"tarifas,omitempty"`
	Descontos       int             `json:"descontos"`
	Clientes        map[string]int  `json:"clientes,omitempty"`
}

// DefaultCompany returns an empty registry skeleton.
func DefaultCompany() *Company {
	return &Company{
		Fornecedores:    map[string]int{},
		ContasPagamento: PaymentAccounts{},
	}
}

// SupplierAccount returns the account code mapped to a supplier name.
func (c *Company) SupplierAccount(name string) (int, bool) {
	code, ok := c.Fornecedores[name]
	return code, ok
}

// ClientAccount returns the account code mapped to a client name.
func (c *Company) ClientAccount(name string) (int, bool) {
	code, ok := c.Clientes[name]
	return code, ok
}

// BankAccount returns the default bank account: the first configured
// payment account, or zero when none exist.
func (c *Company) BankAccount() int {
	code, _ := c.ContasPagamento.First()
	return code
}

// FineAccount returns the fine/interest account code (0 when unset).
func (c *Company) FineAccount() int { return c.MultasJuros }

// DiscountAccount returns the discount account code (0 when unset).
func (c *Company) DiscountAccount() int { return c.Descontos }

// FeeAccount returns the boleto fee account code, falling back to the
// documented default when the key is absent.
func (c *Company) FeeAccount() int {
	if c.Tarifas == nil {
		return DefaultFeeAccount
	}
	return *c.Tarifas
}

// LoadCompany reads a company registry JSON file.
func LoadCompany(path string) (*Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading company registry: %w", err)
	}
	var c Company
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing company registry: %w", err)
	}
	if c.Fornecedores == nil {
		c.Fornecedores = map[string]int{}
	}
	return &c, nil
}

// SaveCompany writes a company registry atomically (temp file + rename)
// so a crashed write never leaves a half-written registry behind.
func SaveCompany(path string, c *Company) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling company registry: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing company registry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing company registry: %w", err)
	}
	return nil
}

// PaymentAccounts is an ordered name-to-account-code map. JSON object key
// order is preserved across load and save because the first entry is the
// default bank account.
type PaymentAccounts struct {
	names []string
	codes map[string]int
}

// Set adds or updates an account, keeping first-insertion order.
func (p *PaymentAccounts) Set(name string, code int) {
	if p.codes == nil {
		p.codes = map[string]int{}
	}
	if _, ok := p.codes[name]; !ok {
		p.names = append(p.names, name)
	}
	p.codes[name] = code
}

// Delete removes an account, reporting whether it existed.
func (p *PaymentAccounts) Delete(name string) bool {
	if _, ok := p.codes[name]; !ok {
		return false
	}
	delete(p.codes, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the code for an account name.
func (p PaymentAccounts) Get(name string) (int, bool) {
	code, ok := p.codes[name]
	return code, ok
}

// First returns the first configured account.
func (p PaymentAccounts) First() (int, bool) {
	if len(p.names) == 0 {
		return 0, false
	}
	return p.codes[p.names[0]], true
}

// Names returns the account names in configuration order.
func (p PaymentAccounts) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Len returns the number of configured accounts.
func (p PaymentAccounts) Len() int { return len(p.names) }

// MarshalJSON renders the accounts as a JSON object in insertion order.
func (p PaymentAccounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(p.codes[name]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object token by token to keep key order.
func (p *PaymentAccounts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("contas_pagamento: expected object, got %v", tok)
	}

	*p = PaymentAccounts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("contas_pagamento: bad key %v", keyTok)
		}
		var code int
		if err := dec.Decode(&code); err != nil {
			return fmt.Errorf("contas_pagamento[%q]: %w", name, err)
		}
		p.Set(name, code)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
