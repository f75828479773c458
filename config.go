package hullsat

import (
	"math"

	"github.com/akmonengine/hullsat/constraint"
	"github.com/akmonengine/hullsat/narrow"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	BroadPhaseAll  = "all"
	BroadPhaseGrid = "grid"
)

// Config holds the manager settings. Keys follow the mapstructure tags.
type Config struct {
	// IterationCap bounds the fixed-point loop of one Step
	IterationCap int `mapstructure:"iteration_cap"`
	// Tolerance is the signed distance above which an axis separates two colliders
	Tolerance float64 `mapstructure:"tolerance"`
	// SeparationBias is added to the depth by the default response; it must exceed
	// Tolerance for a resolved pair to test apart on the next iteration
	SeparationBias float64 `mapstructure:"separation_bias"`
	// Compliance softens the default response; 0 is a rigid correction. A soft response
	// may need several iterations to separate a deep pair.
	Compliance float64 `mapstructure:"compliance"`
	// AngularDamping is the decay rate (1/s) the default response applies to the angular
	// velocity of bodies in contact
	AngularDamping float64 `mapstructure:"angular_damping"`

	BroadPhase   string  `mapstructure:"broad_phase"`
	GridCellSize float64 `mapstructure:"grid_cell_size"`
	GridCells    int     `mapstructure:"grid_cells"`

	// Debug routes narrow phase draw requests to the logger
	Debug bool `mapstructure:"debug"`
}

func DefaultConfig() Config {
	return Config{
		IterationCap:   8,
		Tolerance:      narrow.DefaultTolerance,
		SeparationBias: constraint.DefaultSeparationBias,
		AngularDamping: constraint.DefaultContactAngularDamping,
		BroadPhase:     BroadPhaseAll,
		GridCellSize:   4.0,
		GridCells:      1024,
	}
}

// DecodeConfig overlays the given attributes on DefaultConfig and validates the result.
// Unknown keys are rejected.
func DecodeConfig(attributes map[string]any) (Config, error) {
	conf := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           &conf,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "cannot build config decoder")
	}
	if err := decoder.Decode(attributes); err != nil {
		return Config{}, errors.Wrap(err, "cannot decode collision config")
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var err error
	if c.IterationCap < 1 {
		err = multierr.Append(err, errors.Errorf("iteration_cap must be at least 1, got %d", c.IterationCap))
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		err = multierr.Append(err, errors.Errorf("tolerance must be finite, got %v", c.Tolerance))
	}
	if !(c.SeparationBias > c.Tolerance) {
		err = multierr.Append(err, errors.Errorf("separation_bias (%v) must exceed tolerance (%v)", c.SeparationBias, c.Tolerance))
	}
	if !(c.Compliance >= 0) {
		err = multierr.Append(err, errors.Errorf("compliance must be non-negative, got %v", c.Compliance))
	}
	if !(c.AngularDamping >= 0) {
		err = multierr.Append(err, errors.Errorf("angular_damping must be non-negative, got %v", c.AngularDamping))
	}

	switch c.BroadPhase {
	case BroadPhaseAll:
	case BroadPhaseGrid:
		if !(c.GridCellSize > 0) {
			err = multierr.Append(err, errors.Errorf("grid_cell_size must be positive, got %v", c.GridCellSize))
		}
		if c.GridCells < 1 {
			err = multierr.Append(err, errors.Errorf("grid_cells must be at least 1, got %d", c.GridCells))
		}
	default:
		err = multierr.Append(err, errors.Errorf("unknown broad_phase %q", c.BroadPhase))
	}

	return errors.Wrap(err, "invalid collision config")
}
