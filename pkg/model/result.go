package model

import "time"

// ResultRow is one entry of the session classification.
// The segment times Q1-Q3 are only set for qualifying sessions.
type ResultRow struct {
	Position     int            `json:"position"`
	DriverNumber int            `json:"driverNumber"`
	BestLap      *time.Duration `json:"bestLap,omitempty"`
	Q1           *time.Duration `json:"q1,omitempty"`
	Q2           *time.Duration `json:"q2,omitempty"`
	Q3           *time.Duration `json:"q3,omitempty"`
}

// QualifyingLap returns the lap time of the latest qualifying segment
// the driver took part in (Q3 first, then Q2, then Q1) along with the
// segment name. Returns nil and an empty string if no segment has a time.
func (r *ResultRow) QualifyingLap() (*time.Duration, string) {
	if r.Q3 != nil {
		return r.Q3, "Q3"
	}
	if r.Q2 != nil {
		return r.Q2, "Q2"
	}
	if r.Q1 != nil {
		return r.Q1, "Q1"
	}
	return nil, ""
}
