// Package conflict compares the revenue carrier with the strategic carrier.
package conflict

import "github.com/okian/cellpulse/internal/domain/contribution"

// Report signals whether revenue and strategy are carried by different branches.
// Determined is false when either carrier is undefined (zero total); Conflict
// is then false.
type Report struct {
	PrimaryCarrier   string `json:"primary_carrier"`
	StrategicCarrier string `json:"strategic_carrier"`
	Conflict         bool   `json:"conflict"`
	Determined       bool   `json:"determined"`
}

// Detect compares the carriers of the primary and strategic contribution views.
func Detect(primary, strategic contribution.Analysis) Report {
	r := Report{
		PrimaryCarrier:   primary.Carrier,
		StrategicCarrier: strategic.Carrier,
		Determined:       primary.Defined && strategic.Defined,
	}
	r.Conflict = r.Determined && r.PrimaryCarrier != r.StrategicCarrier
	return r
}
