package lifespan

import (
	"errors"
	"fmt"

	"lifeprogress/internal/model"
)

// ErrConfiguration is returned when a dataset lacks the mandatory fallback
// entry. It points at a broken dataset, not at user input.
var ErrConfiguration = errors.New("lifespan dataset is misconfigured")

// Resolve returns the record for nation, or the "Common" record when nation
// is nil or unknown. Lookup is exact.
func Resolve(nation *string, ds model.Dataset) (model.LifespanRecord, error) {
	rec, _, err := ResolveNamed(nation, ds)
	return rec, err
}

// ResolveNamed is Resolve that also reports the dataset key it used.
func ResolveNamed(nation *string, ds model.Dataset) (model.LifespanRecord, string, error) {
	common, ok := ds[model.CommonNation]
	if !ok {
		return model.LifespanRecord{}, "", fmt.Errorf("%w: missing %q entry", ErrConfiguration, model.CommonNation)
	}
	if nation != nil {
		if rec, ok := ds[*nation]; ok {
			return rec, *nation, nil
		}
	}
	return common, model.CommonNation, nil
}

// View returns the record stored under name, if any.
func View(name string, ds model.Dataset) (model.LifespanRecord, bool) {
	rec, ok := ds[name]
	return rec, ok
}
