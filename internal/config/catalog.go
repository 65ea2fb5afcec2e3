package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Catalog is the credit mapping table source: what each purchase is worth in minutes.
//
// Price ids are case-sensitive, so the catalog is read with yaml.v3 directly
// rather than through viper, which lowercases map keys.
type Catalog struct {
	// Prices maps a provider price id to credits. Checked first.
	Prices map[string]int64 `yaml:"prices" validate:"dive,keys,required,endkeys,gt=0"`
	// Amounts maps a paid amount in minor currency units to credits.
	Amounts map[int64]int64 `yaml:"amounts" validate:"dive,keys,gt=0,endkeys,gt=0"`
}

// DefaultCatalog returns the amounts sold on the pricing page.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Prices: map[string]int64{},
		Amounts: map[int64]int64{
			499:  100,
			1199: 300,
			1599: 500,
		},
	}
}

// LoadCatalog reads a catalog file. An empty path yields DefaultCatalog.
// Sections absent from the file keep their defaults.
func LoadCatalog(path string) (*Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if file.Prices != nil {
		catalog.Prices = file.Prices
	}
	if file.Amounts != nil {
		catalog.Amounts = file.Amounts
	}

	if err := validator.New().Struct(catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return catalog, nil
}
