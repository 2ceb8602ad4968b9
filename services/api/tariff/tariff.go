package tariff

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PowerFactorRule configures the power-factor surcharge. The surcharge applies
// when demandVA/demandW exceeds Threshold and charges Rate per unit of excess.
//
// The default threshold of 728 is carried over from the billing behavior this
// service replaces. It is far above any plausible VA/W ratio, so with stock
// settings the surcharge never fires; the field exists so a corrected basis
// can be configured without a code change.
type PowerFactorRule struct {
	Threshold float64 `yaml:"threshold"`
	Rate      float64 `yaml:"rate"`
}

// Tariff is the on-disk tariff rate sheet (YAML). Rates are per kWh or per kW
// in the billing currency. FTRate is usually negative (a credit).
type Tariff struct {
	OnPeakRate  float64         `yaml:"on_peak_rate"`
	OffPeakRate float64         `yaml:"off_peak_rate"`
	DemandRate  float64         `yaml:"demand_rate"`
	FTRate      float64         `yaml:"ft_rate"`
	VATRate     float64         `yaml:"vat_rate"`
	PowerFactor PowerFactorRule `yaml:"power_factor"`
}

// Default returns the compiled-in rate sheet.
func Default() Tariff {
	return Tariff{
		OnPeakRate:  4.1839,
		OffPeakRate: 2.6037,
		DemandRate:  132.93,
		FTRate:      -0.147,
		VATRate:     0.07,
		PowerFactor: PowerFactorRule{
			Threshold: 728,
			Rate:      56.07,
		},
	}
}

// Load reads a tariff file, applying defaults for the whole sheet when path is
// empty and for any field left at zero.
func Load(path string) (Tariff, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tariff file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parse tariff file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate rejects rate sheets that would produce nonsense bills.
func (t Tariff) Validate() error {
	if t.OnPeakRate < 0 || t.OffPeakRate < 0 {
		return errors.New("energy rates must be non-negative")
	}
	if t.DemandRate < 0 {
		return errors.New("demand_rate must be non-negative")
	}
	if t.VATRate < 0 || t.VATRate >= 1 {
		return errors.New("vat_rate must be in [0, 1)")
	}
	if t.PowerFactor.Rate < 0 {
		return errors.New("power_factor.rate must be non-negative")
	}
	return nil
}
