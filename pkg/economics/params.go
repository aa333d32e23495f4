package economics

import (
	"context"
	"log/slog"
	"os"

	"github.com/levenlabs/go-lflag"

	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/types"
)

// DefaultParameters returns the parameters used when nothing is configured.
func DefaultParameters() types.EconomicParameters {
	return types.EconomicParameters{
		TariffInflationRate:        0.07,
		OPEXInflationRate:          0.03,
		DiscountRate:               0.08,
		DegradationRate:            0.004,
		CAPEXPerKWP:                2300,
		OPEXRate:                   0.04,
		LifetimeYears:              25,
		GridEmissionFactorKgPerKWH: 0.3,
	}
}

// Defaults holds the configured economic parameters that requests override.
type Defaults struct {
	params types.EconomicParameters
}

// NewDefaults returns Defaults wrapping params.
func NewDefaults(params types.EconomicParameters) *Defaults {
	return &Defaults{params: params}
}

// Configured registers the economic-defaults flag and returns the Defaults
// filled in once flags are parsed.
func Configured() *Defaults {
	d := &Defaults{params: DefaultParameters()}
	params := DefaultParameters()
	lflag.JSON(&params, "economic-defaults", params, "JSON object of economic parameters to use when a request does not override them")

	lflag.Do(func() {
		if err := params.Validate(); err != nil {
			log.Ctx(context.Background()).Error("invalid economic defaults", slog.Any("error", err))
			os.Exit(1)
		}
		d.params = params
	})
	return d
}

// Parameters returns a copy of the configured parameters.
func (d *Defaults) Parameters() types.EconomicParameters {
	return d.params
}

// Merge applies every non-nil override on top of the defaults and validates
// the result.
func (d *Defaults) Merge(o *types.EconomicOverrides) (types.EconomicParameters, error) {
	p := d.params
	if o != nil {
		setFloat(&p.TariffInflationRate, o.TariffInflationRate)
		setFloat(&p.OPEXInflationRate, o.OPEXInflationRate)
		setFloat(&p.DiscountRate, o.DiscountRate)
		setFloat(&p.DegradationRate, o.DegradationRate)
		setFloat(&p.CAPEXPerKWP, o.CAPEXPerKWP)
		setFloat(&p.OPEXRate, o.OPEXRate)
		setFloat(&p.GridEmissionFactorKgPerKWH, o.GridEmissionFactorKgPerKWH)
		if o.LifetimeYears != nil {
			p.LifetimeYears = *o.LifetimeYears
		}
		if o.CAPEXOverride != nil {
			v := *o.CAPEXOverride
			p.CAPEXOverride = &v
		}
		if o.Year1SavingsOverride != nil {
			v := *o.Year1SavingsOverride
			p.Year1SavingsOverride = &v
		}
	}
	if err := p.Validate(); err != nil {
		return types.EconomicParameters{}, err
	}
	return p, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
