package openf1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp accepts the two formats the API delivers: RFC3339 with
// offset and a plain layout without offset (treated as UTC).
type Timestamp struct {
	time.Time
}

//nolint:gochecknoglobals // lookup table
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

// Durations handles the polymorphic duration attribute of session
// results: a single number for races, an array with one entry per
// qualifying segment. Missing segments stay nil.
type Durations []*float64

func (d *Durations) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*d = nil
		return nil
	}
	if trimmed[0] == '[' {
		var vals []*float64
		if err := json.Unmarshal(trimmed, &vals); err != nil {
			return err
		}
		*d = vals
		return nil
	}
	var val float64
	if err := json.Unmarshal(trimmed, &val); err != nil {
		return err
	}
	*d = Durations{&val}
	return nil
}

// Segment returns the i-th entry or nil when absent.
func (d Durations) Segment(i int) *float64 {
	if i < 0 || i >= len(d) {
		return nil
	}
	return d[i]
}

type Meeting struct {
	MeetingKey          int       `json:"meeting_key"`
	MeetingName         string    `json:"meeting_name"`
	MeetingOfficialName string    `json:"meeting_official_name"`
	CircuitShortName    string    `json:"circuit_short_name"`
	CountryName         string    `json:"country_name"`
	Year                int       `json:"year"`
	DateStart           Timestamp `json:"date_start"`
}

type Session struct {
	SessionKey  int       `json:"session_key"`
	SessionName string    `json:"session_name"`
	SessionType string    `json:"session_type"`
	MeetingKey  int       `json:"meeting_key"`
	Year        int       `json:"year"`
	DateStart   Timestamp `json:"date_start"`
	DateEnd     Timestamp `json:"date_end"`
}

type SessionResult struct {
	Position     int       `json:"position"`
	DriverNumber int       `json:"driver_number"`
	NumberOfLaps int       `json:"number_of_laps"`
	Duration     Durations `json:"duration"`
	DNF          bool      `json:"dnf"`
	DNS          bool      `json:"dns"`
	DSQ          bool      `json:"dsq"`
}

type Driver struct {
	DriverNumber int    `json:"driver_number"`
	NameAcronym  string `json:"name_acronym"`
	FullName     string `json:"full_name"`
	TeamName     string `json:"team_name"`
	TeamColour   string `json:"team_colour"`
}

type Lap struct {
	DriverNumber int       `json:"driver_number"`
	LapNumber    int       `json:"lap_number"`
	LapDuration  *float64  `json:"lap_duration"`
	DateStart    Timestamp `json:"date_start"`
	IsPitOutLap  bool      `json:"is_pit_out_lap"`
}

type Stint struct {
	DriverNumber int    `json:"driver_number"`
	StintNumber  int    `json:"stint_number"`
	Compound     string `json:"compound"`
	LapStart     int    `json:"lap_start"`
	LapEnd       int    `json:"lap_end"`
}

type CarData struct {
	Date     Timestamp `json:"date"`
	Speed    float64   `json:"speed"`
	Throttle float64   `json:"throttle"`
	Brake    float64   `json:"brake"`
	Gear     int       `json:"n_gear"`
	RPM      int       `json:"rpm"`
}
