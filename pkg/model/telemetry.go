package model

import "time"

// TelemetryFrame is one sample of the car data channels.
// Throttle and Brake are percentages in the range 0-100.
type TelemetryFrame struct {
	Time     time.Time `json:"time"`
	Distance float64   `json:"distance"` // meters since start of lap
	Speed    float64   `json:"speed"`    // km/h
	Throttle float64   `json:"throttle"`
	Brake    float64   `json:"brake"`
}

// LapTelemetry holds the car data samples of a single lap.
type LapTelemetry struct {
	DriverNumber int              `json:"driverNumber"`
	LapNumber    int              `json:"lapNumber"`
	Frames       []TelemetryFrame `json:"frames"`
}
