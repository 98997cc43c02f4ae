package observation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// StaticObservation is the persisted record shape for electrostatic charge
// measurements taken on physical draw equipment. The monitoring core never
// produces or consumes these records itself; the schema is a contract with
// external data collectors, so field names are fixed.
type StaticObservation struct {
	ChargeC        float64   `json:"electrostatic_charge_C" validate:"required"`
	TestMethod     string    `json:"electrostatic_test_method" validate:"required,oneof=field_meter faraday_cup surface_voltmeter"`
	MeasuredAt     time.Time `json:"electrostatic_measured_at" validate:"required"`
	RelHumidityPct float64   `json:"relative_humidity_pct" validate:"gte=0,lte=100"`
	AntiStaticUsed bool      `json:"anti_static_used"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the record against the schema contract.
func (o StaticObservation) Validate() error {
	return validate.Struct(o)
}
