package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/approval"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

var (
	ErrUserNotFound     = errors.New("user not found in test data")
	ErrApproverNotFound = errors.New("approver not found in test data")
	ErrBankNotFound     = errors.New("bank not found in test data")
	ErrFixtureNotFound  = errors.New("request fixture not found in test data")
)

// User is a portal account the suite logs in with.
type User struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Area     string   `json:"area"`
	Role     string   `json:"rol"`
	Memos    []string `json:"memos,omitempty"`
}

// AmountRange is a min/max interval in whole currency units as written in
// the fixture file.
type AmountRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Approver is a portal account holding one approval tier, with the amount
// ranges that tier owns per currency.
type Approver struct {
	User
	Level  int                    `json:"nivel"`
	Ranges map[string]AmountRange `json:"rangos"`
}

// Bank describes an account-number format the register form validates.
type Bank struct {
	Name   string `json:"nombre"`
	Digits int    `json:"digitos"`
}

// TestData mirrors the usuarios.json fixture layout: registrars by name,
// approvers grouped by area then by "aprobadorN" key, banks by key.
type TestData struct {
	Registrars map[string]User                `json:"registradores"`
	Approvers  map[string]map[string]Approver `json:"aprobadores"`
	Banks      map[string]Bank                `json:"bancos"`
}

// LoadTestData reads usuarios.json from the data directory.
func LoadTestData(dataDir string) (*TestData, error) {
	path := filepath.Join(dataDir, "usuarios.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test data: %w", err)
	}

	var td TestData
	if err := json.Unmarshal(data, &td); err != nil {
		return nil, fmt.Errorf("parse test data %s: %w", path, err)
	}

	return &td, nil
}

// UserByName finds a registrar or approver account by its fixture key.
func (d *TestData) UserByName(name string) (*User, error) {
	key := strings.ToLower(name)

	if u, ok := d.Registrars[key]; ok {
		return &u, nil
	}

	for _, areaApprovers := range d.Approvers {
		if a, ok := areaApprovers[key]; ok {
			u := a.User
			return &u, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
}

// ApproverFor returns the approver account holding the given tier in an area.
func (d *TestData) ApproverFor(area string, level int) (*Approver, error) {
	areaApprovers, ok := d.Approvers[strings.ToLower(area)]
	if !ok {
		return nil, fmt.Errorf("%w: area %s", ErrApproverNotFound, area)
	}

	a, ok := areaApprovers[fmt.Sprintf("aprobador%d", level)]
	if !ok {
		return nil, fmt.Errorf("%w: area %s level %d", ErrApproverNotFound, area, level)
	}

	return &a, nil
}

// BankByName finds a bank definition by display name, ignoring case.
func (d *TestData) BankByName(name string) (*Bank, error) {
	for _, b := range d.Banks {
		if strings.EqualFold(b.Name, name) {
			bank := b
			return &bank, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBankNotFound, name)
}

// ApproverTable converts the per-area approver accounts into the resolver's
// range table.
func (d *TestData) ApproverTable() (approval.Table, error) {
	defs := make(map[string][]approval.ApproverDefinition, len(d.Approvers))

	for area, areaApprovers := range d.Approvers {
		for _, a := range areaApprovers {
			ranges := make(map[money.Currency]approval.Range, len(a.Ranges))
			for currency, rng := range a.Ranges {
				ranges[money.Normalize(currency)] = approval.Range{
					Min: money.FromFloat(rng.Min),
					Max: money.FromFloat(rng.Max),
				}
			}
			defs[area] = append(defs[area], approval.ApproverDefinition{
				Level:  a.Level,
				Ranges: ranges,
			})
		}
	}

	return approval.NewTable(defs)
}
