package runner

import (
	"github.com/dmitrymomot/vectorwriter/pkg/billing"
	"github.com/dmitrymomot/vectorwriter/pkg/dataset"
	"github.com/dmitrymomot/vectorwriter/pkg/runinput"
)

// Settings are fixed for the lifetime of a Runner.
type Settings struct {
	Limits runinput.Limits
	// DatasetLimit caps items read from one dataset.
	DatasetLimit  int
	RatePerVector float64
}

// DefaultSettings returns production settings.
func DefaultSettings() Settings {
	return Settings{
		Limits:        runinput.DefaultLimits(),
		DatasetLimit:  dataset.DefaultLimit,
		RatePerVector: billing.RatePerVector,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Limits.MaxVectors == 0 && s.Limits.MaxBatchSize == nil {
		s.Limits = d.Limits
	}
	if s.DatasetLimit <= 0 {
		s.DatasetLimit = d.DatasetLimit
	}
	if s.RatePerVector <= 0 {
		s.RatePerVector = d.RatePerVector
	}
	return s
}
