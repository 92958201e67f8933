package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RequestFixture holds the form values for one registration scenario,
// identified by keys like "pago_sobrevivencia_interbank_dolares".
type RequestFixture struct {
	DNI           string  `json:"dni"`
	Policy        string  `json:"poliza"`
	Currency      string  `json:"moneda"`
	Amount        float64 `json:"monto"`
	Bank          string  `json:"banco"`
	AccountType   string  `json:"tipo_cuenta"`
	AccountNumber string  `json:"numero_cuenta"`
}

// RequestFixtures maps area → identifier → fixture, the solicitudes.json
// layout.
type RequestFixtures map[string]map[string]RequestFixture

// LoadRequestFixtures reads solicitudes.json from the data directory.
func LoadRequestFixtures(dataDir string) (RequestFixtures, error) {
	path := filepath.Join(dataDir, "solicitudes.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request fixtures: %w", err)
	}

	var fixtures RequestFixtures
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse request fixtures %s: %w", path, err)
	}

	return fixtures, nil
}

// ForArea returns the fixture registered under an identifier within an area.
func (f RequestFixtures) ForArea(area, identifier string) (*RequestFixture, error) {
	areaFixtures, ok := f[strings.ToLower(area)]
	if !ok {
		return nil, fmt.Errorf("%w: area %s", ErrFixtureNotFound, area)
	}

	fixture, ok := areaFixtures[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrFixtureNotFound, area, identifier)
	}

	return &fixture, nil
}
