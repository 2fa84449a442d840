package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// CommonNation is the dataset key used when no nation is given or the given
// nation is not present.
const CommonNation = "Common"

// LifespanRecord holds life expectancy figures, in years, for one nation.
type LifespanRecord struct {
	All    float64 `json:"all"`
	Female float64 `json:"female"`
	Male   float64 `json:"male"`
}

var errNonPositive = errors.New("life expectancy must be a positive finite number")

// Validate reports whether every figure is positive and finite.
func (r LifespanRecord) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"all", r.All}, {"female", r.Female}, {"male", r.Male}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return fmt.Errorf("%s=%v: %w", f.name, f.v, errNonPositive)
		}
	}
	return nil
}

// Years returns the expectancy that applies to g.
func (r LifespanRecord) Years(g Gender) float64 {
	switch g {
	case GenderMale:
		return r.Male
	case GenderFemale:
		return r.Female
	default:
		return r.All
	}
}

// Dataset maps nation names to their lifespan record. Keys are matched
// exactly. A dataset is treated as read-only once acquired.
type Dataset map[string]LifespanRecord

// Names returns the nation names in ascending order.
func (d Dataset) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every record of the dataset.
func (d Dataset) Validate() error {
	for _, name := range d.Names() {
		if err := d[name].Validate(); err != nil {
			return fmt.Errorf("nation %q: %w", name, err)
		}
	}
	return nil
}
