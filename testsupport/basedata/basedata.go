package basedata

import (
	"context"
	"time"

	"github.com/pitwall/f1insight/pkg/model"
	"github.com/pitwall/f1insight/pkg/timing"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2023-05-27T14:00:00Z")
	return t
}

func durationPtr(arg time.Duration) *time.Duration {
	return &arg
}

// LapSeconds converts a lap time in seconds to a *time.Duration.
func LapSeconds(arg float64) *time.Duration {
	return durationPtr(time.Duration(arg * float64(time.Second)))
}

//nolint:funlen // fixture data
func SampleQualifyingSession() *model.SessionData {
	return &model.SessionData{
		Year:        2023,
		EventName:   "Monaco Grand Prix",
		Round:       6,
		SessionName: "Qualifying",
		SessionKey:  9094,
		Drivers: []model.Driver{
			{Number: 1, Abbreviation: "VER", FullName: "Max Verstappen",
				TeamName: "Red Bull Racing", TeamColor: "3671C6"},
			{Number: 14, Abbreviation: "ALO", FullName: "Fernando Alonso",
				TeamName: "Aston Martin", TeamColor: "358C75"},
			{Number: 16, Abbreviation: "LEC", FullName: "Charles Leclerc",
				TeamName: "Ferrari", TeamColor: "F91536"},
			{Number: 31, Abbreviation: "OCO", FullName: "Esteban Ocon",
				TeamName: "Alpine", TeamColor: "2293D1"},
			{Number: 44, Abbreviation: "HAM", FullName: "Lewis Hamilton",
				TeamName: "Mercedes", TeamColor: ""},
		},
		Results: []model.ResultRow{
			{Position: 1, DriverNumber: 1,
				Q1: LapSeconds(72.386), Q2: LapSeconds(71.908), Q3: LapSeconds(71.365)},
			{Position: 2, DriverNumber: 14,
				Q1: LapSeconds(72.600), Q2: LapSeconds(71.992), Q3: LapSeconds(71.449)},
			{Position: 3, DriverNumber: 16,
				Q1: LapSeconds(72.541), Q2: LapSeconds(71.871), Q3: LapSeconds(71.471)},
			{Position: 4, DriverNumber: 31,
				Q1: LapSeconds(72.801), Q2: LapSeconds(72.214), Q3: LapSeconds(71.553)},
			{Position: 5, DriverNumber: 44,
				Q1: LapSeconds(72.918), Q2: LapSeconds(72.106)},
		},
		Laps: []model.Lap{
			{DriverNumber: 1, LapNumber: 1, Stint: 1, Compound: model.CompoundSoft,
				Start: TestTime()},
			{DriverNumber: 1, LapNumber: 2, LapTime: LapSeconds(71.365),
				Stint: 1, Compound: model.CompoundSoft, Start: TestTime().Add(2 * time.Minute)},
			{DriverNumber: 14, LapNumber: 1, Stint: 1, Compound: model.CompoundSoft,
				Start: TestTime().Add(10 * time.Second)},
			{DriverNumber: 14, LapNumber: 2, LapTime: LapSeconds(71.449),
				Stint: 1, Compound: model.CompoundSoft, Start: TestTime().Add(2 * time.Minute)},
			{DriverNumber: 16, LapNumber: 1, Stint: 1, Compound: model.CompoundSoft,
				Start: TestTime().Add(20 * time.Second)},
			{DriverNumber: 16, LapNumber: 2, LapTime: LapSeconds(71.471),
				Stint: 1, Compound: model.CompoundSoft, Start: TestTime().Add(2 * time.Minute)},
			{DriverNumber: 31, LapNumber: 1, LapTime: LapSeconds(71.553),
				Stint: 1, Compound: model.CompoundSoft, Start: TestTime().Add(30 * time.Second)},
			{DriverNumber: 44, LapNumber: 1, LapTime: LapSeconds(72.106),
				Stint: 1, Compound: model.CompoundSoft, Start: TestTime().Add(40 * time.Second)},
		},
	}
}

func SampleRaceSession() *model.SessionData {
	data := &model.SessionData{
		Year:        2023,
		EventName:   "Monaco Grand Prix",
		Round:       6,
		SessionName: "Race",
		SessionKey:  9102,
		Drivers: []model.Driver{
			{Number: 1, Abbreviation: "VER", FullName: "Max Verstappen",
				TeamName: "Red Bull Racing", TeamColor: "3671C6"},
			{Number: 14, Abbreviation: "ALO", FullName: "Fernando Alonso",
				TeamName: "Aston Martin", TeamColor: "358C75"},
			{Number: 31, Abbreviation: "OCO", FullName: "Esteban Ocon",
				TeamName: "Alpine", TeamColor: "2293D1"},
		},
		Results: []model.ResultRow{
			{Position: 1, DriverNumber: 1, BestLap: LapSeconds(75.650)},
			{Position: 2, DriverNumber: 14, BestLap: LapSeconds(76.021)},
			{Position: 3, DriverNumber: 31, BestLap: LapSeconds(76.803)},
		},
	}
	data.Laps = append(data.Laps, stintLaps(1, 1, model.CompoundMedium, 1, 54, 78*time.Second)...)
	data.Laps = append(data.Laps, stintLaps(1, 2, model.CompoundIntermediate, 55, 78, 92*time.Second)...)
	data.Laps = append(data.Laps, stintLaps(14, 1, model.CompoundHard, 1, 55, 79*time.Second)...)
	data.Laps = append(data.Laps, stintLaps(14, 2, model.CompoundIntermediate, 56, 78, 93*time.Second)...)
	data.Laps = append(data.Laps, stintLaps(31, 1, model.CompoundMedium, 1, 32, 79*time.Second)...)
	data.Laps = append(data.Laps, stintLaps(31, 2, model.CompoundHard, 33, 54, 80*time.Second)...)
	data.Laps = append(data.Laps, stintLaps(31, 3, model.CompoundIntermediate, 55, 78, 94*time.Second)...)
	return data
}

// stintLaps builds one lap per lap number with a flat pace, so average
// pace assertions stay exact.
func stintLaps(
	driver, stint int,
	compound model.Compound,
	fromLap, toLap int,
	pace time.Duration,
) []model.Lap {
	ret := make([]model.Lap, 0, toLap-fromLap+1)
	for lap := fromLap; lap <= toLap; lap++ {
		ret = append(ret, model.Lap{
			DriverNumber: driver,
			LapNumber:    lap,
			LapTime:      durationPtr(pace),
			Stint:        stint,
			Compound:     compound,
			Start:        TestTime().Add(time.Duration(lap) * 80 * time.Second),
		})
	}
	return ret
}

// SampleTelemetry returns a short lap trace with the distance already
// integrated, the way the timing providers deliver it.
func SampleTelemetry(driver, lap int) *model.LapTelemetry {
	return &model.LapTelemetry{
		DriverNumber: driver,
		LapNumber:    lap,
		Frames: []model.TelemetryFrame{
			{Time: TestTime(), Distance: 0, Speed: 120, Throttle: 40, Brake: 0},
			{Time: TestTime().Add(time.Second), Distance: 45, Speed: 205, Throttle: 100, Brake: 0},
			{Time: TestTime().Add(2 * time.Second), Distance: 110, Speed: 262, Throttle: 100, Brake: 0},
			{Time: TestTime().Add(3 * time.Second), Distance: 180, Speed: 190, Throttle: 0, Brake: 90},
			{Time: TestTime().Add(4 * time.Second), Distance: 230, Speed: 135, Throttle: 20, Brake: 35},
		},
	}
}

// StaticProvider serves canned session data in tests.
type StaticProvider struct {
	Data         *model.SessionData
	SessionErr   error
	TelemetryErr error
	// TelemetryCalls records the laps telemetry was requested for.
	TelemetryCalls []model.Lap
}

var _ timing.Provider = (*StaticProvider)(nil)

func (p *StaticProvider) Session(
	_ context.Context, _ int, _, _ string,
) (*model.SessionData, error) {
	if p.SessionErr != nil {
		return nil, p.SessionErr
	}
	return p.Data, nil
}

func (p *StaticProvider) LapTelemetry(
	_ context.Context, _ int, lap model.Lap,
) (*model.LapTelemetry, error) {
	if p.TelemetryErr != nil {
		return nil, p.TelemetryErr
	}
	p.TelemetryCalls = append(p.TelemetryCalls, lap)
	return SampleTelemetry(lap.DriverNumber, lap.LapNumber), nil
}
