package model

import (
	"sort"

	"github.com/samber/lo"
)

// SessionData aggregates everything the analysis needs about a session:
// the event header, the participating drivers, the classification and
// the lap data.
type SessionData struct {
	Year        int         `json:"year"`
	EventName   string      `json:"eventName"`
	Round       int         `json:"round"`
	SessionName string      `json:"sessionName"`
	SessionKey  int         `json:"sessionKey"`
	Drivers     []Driver    `json:"drivers"`
	Results     []ResultRow `json:"results"`
	Laps        []Lap       `json:"laps"`
}

// Driver looks up a driver by car number.
func (s *SessionData) Driver(num int) (Driver, bool) {
	return lo.Find(s.Drivers, func(d Driver) bool { return d.Number == num })
}

// DriverLaps returns the driver's laps ordered by lap number.
func (s *SessionData) DriverLaps(num int) []Lap {
	laps := lo.Filter(s.Laps, func(l Lap, _ int) bool {
		return l.DriverNumber == num
	})
	sort.Slice(laps, func(i, j int) bool {
		return laps[i].LapNumber < laps[j].LapNumber
	})
	return laps
}

// TopResults returns the first n rows of the classification ordered by
// position. Rows without a position are sorted last.
func (s *SessionData) TopResults(n int) []ResultRow {
	rows := make([]ResultRow, len(s.Results))
	copy(rows, s.Results)
	sort.SliceStable(rows, func(i, j int) bool {
		pi, pj := rows[i].Position, rows[j].Position
		if pi <= 0 {
			return false
		}
		if pj <= 0 {
			return true
		}
		return pi < pj
	})
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows
}
