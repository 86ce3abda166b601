package model

import "time"

// Lap holds the timing data of a single lap. LapTime is nil when the
// provider reports no representative time (out lap, red flag, abort).
type Lap struct {
	DriverNumber int            `json:"driverNumber"`
	LapNumber    int            `json:"lapNumber"`
	LapTime      *time.Duration `json:"lapTime,omitempty"`
	Stint        int            `json:"stint"`
	Compound     Compound       `json:"compound"`
	Start        time.Time      `json:"start"`
}

// Stint is a consecutive run of laps on one set of tyres.
type Stint struct {
	Number   int      `json:"number"`
	Compound Compound `json:"compound"`
	StartLap int      `json:"startLap"`
	Laps     int      `json:"laps"`
}
