//nolint:funlen,lll // readability
package openf1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitwall/f1insight/pkg/model"
	"github.com/pitwall/f1insight/pkg/timing"
	"github.com/pitwall/f1insight/pkg/timing/diskcache"
)

const (
	qualiKey = "9094"
	raceKey  = "9102"
)

//nolint:gocognit,cyclop // test fixture
func newTestServer(requests *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		var body string
		switch r.URL.Path {
		case "/meetings":
			body = `[
			 {"meeting_key":1210,"meeting_name":"Bahrain Grand Prix","meeting_official_name":"Formula 1 Gulf Air Bahrain Grand Prix 2023","circuit_short_name":"Sakhir","country_name":"Bahrain","year":2023,"date_start":"2023-03-03T11:30:00+00:00"},
			 {"meeting_key":1219,"meeting_name":"Monaco Grand Prix","meeting_official_name":"Formula 1 Grand Prix de Monaco 2023","circuit_short_name":"Monaco","country_name":"Monaco","year":2023,"date_start":"2023-05-26T11:30:00+00:00"}
			]`
		case "/sessions":
			if q.Get("meeting_key") != "1219" {
				body = `[]`
				break
			}
			body = `[
			 {"session_key":9094,"session_name":"Qualifying","session_type":"Qualifying","meeting_key":1219,"year":2023,"date_start":"2023-05-27T14:00:00+00:00","date_end":"2023-05-27T15:00:00+00:00"},
			 {"session_key":9102,"session_name":"Race","session_type":"Race","meeting_key":1219,"year":2023,"date_start":"2023-05-28T13:00:00+00:00","date_end":"2023-05-28T15:00:00+00:00"}
			]`
		case "/drivers":
			body = `[
			 {"driver_number":1,"name_acronym":"VER","full_name":"Max VERSTAPPEN","team_name":"Red Bull Racing","team_colour":"3671C6"},
			 {"driver_number":16,"name_acronym":"LEC","full_name":"Charles LECLERC","team_name":"Ferrari","team_colour":"E80020"},
			 {"driver_number":14,"name_acronym":"ALO","full_name":"Fernando ALONSO","team_name":"Aston Martin","team_colour":""}
			]`
		case "/session_result":
			if q.Get("session_key") == qualiKey {
				body = `[
				 {"position":1,"driver_number":1,"duration":[88.909,88.265,88.241]},
				 {"position":2,"driver_number":16,"duration":[89.006,88.630,88.325]},
				 {"position":3,"driver_number":14,"duration":[89.555,88.780,null]}
				]`
			} else {
				body = `[
				 {"position":1,"driver_number":1,"duration":5412.336},
				 {"position":2,"driver_number":16,"duration":5440.101},
				 {"position":3,"driver_number":14,"duration":null}
				]`
			}
		case "/laps":
			if q.Get("session_key") == qualiKey {
				body = `[
				 {"driver_number":1,"lap_number":1,"lap_duration":null,"date_start":"2023-05-27T14:05:00+00:00","is_pit_out_lap":true},
				 {"driver_number":1,"lap_number":2,"lap_duration":88.241,"date_start":"2023-05-27T14:06:40+00:00"},
				 {"driver_number":16,"lap_number":1,"lap_duration":88.325,"date_start":"2023-05-27T14:07:00+00:00"},
				 {"driver_number":14,"lap_number":1,"lap_duration":88.780,"date_start":"2023-05-27T14:08:00+00:00"},
				 {"driver_number":14,"lap_number":3,"lap_duration":90.101,"date_start":"2023-05-27T14:20:00+00:00"}
				]`
			} else {
				body = `[
				 {"driver_number":1,"lap_number":1,"lap_duration":95.5,"date_start":"2023-05-28T13:03:00+00:00"},
				 {"driver_number":1,"lap_number":2,"lap_duration":94.2,"date_start":"2023-05-28T13:04:36+00:00"},
				 {"driver_number":1,"lap_number":3,"lap_duration":96.8,"date_start":"2023-05-28T13:06:10+00:00"}
				]`
			}
		case "/stints":
			if q.Get("session_key") == qualiKey {
				body = `[
				 {"driver_number":1,"stint_number":1,"compound":"SOFT","lap_start":1,"lap_end":2},
				 {"driver_number":16,"stint_number":1,"compound":"SOFT","lap_start":1,"lap_end":1},
				 {"driver_number":14,"stint_number":1,"compound":"SOFT","lap_start":1,"lap_end":1}
				]`
			} else {
				body = `[
				 {"driver_number":1,"stint_number":1,"compound":"MEDIUM","lap_start":1,"lap_end":2},
				 {"driver_number":1,"stint_number":2,"compound":"HARD","lap_start":3,"lap_end":3}
				]`
			}
		case "/car_data":
			if q.Get("driver_number") == "1" {
				body = `[
				 {"date":"2023-05-27T14:06:40.000000+00:00","speed":288,"throttle":100,"brake":0,"n_gear":8,"rpm":11000},
				 {"date":"2023-05-27T14:06:41.000000+00:00","speed":306,"throttle":100,"brake":0,"n_gear":8,"rpm":11200},
				 {"date":"2023-05-27T14:06:42.000000+00:00","speed":324,"throttle":80,"brake":0,"n_gear":8,"rpm":11400},
				 {"date":"2023-05-27T14:06:43.000000+00:00","speed":288,"throttle":0,"brake":100,"n_gear":7,"rpm":10500}
				]`
			} else {
				body = `[]`
			}
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

func newTestProvider(srv *httptest.Server) *Provider {
	return NewProvider(WithClient(NewClient(WithBaseURL(srv.URL))))
}

func TestProviderSessionQualifying(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(&requests)
	defer srv.Close()
	p := newTestProvider(srv)

	data, err := p.Session(context.Background(), 2023, "Monaco", "Q")
	require.NoError(t, err)

	assert.Equal(t, "Monaco Grand Prix", data.EventName)
	assert.Equal(t, 2, data.Round)
	assert.Equal(t, "Qualifying", data.SessionName)
	assert.Equal(t, 9094, data.SessionKey)
	assert.Len(t, data.Drivers, 3)

	ver, ok := data.Driver(1)
	require.True(t, ok)
	assert.Equal(t, "VER", ver.Abbreviation)
	assert.Equal(t, "3671C6", ver.TeamColor)

	require.Len(t, data.Results, 3)
	pole := data.Results[0]
	assert.Equal(t, 1, pole.Position)
	require.NotNil(t, pole.Q3)
	assert.Equal(t, 88*time.Second+241*time.Millisecond, *pole.Q3)
	lapTime, segment := pole.QualifyingLap()
	assert.Equal(t, "Q3", segment)
	assert.Equal(t, *pole.Q3, *lapTime)

	// P3 got eliminated before Q3, falls back to Q2
	third := data.Results[2]
	assert.Nil(t, third.Q3)
	lapTime, segment = third.QualifyingLap()
	assert.Equal(t, "Q2", segment)
	assert.Equal(t, 88*time.Second+780*time.Millisecond, *lapTime)

	// out lap has no time but carries the stint compound
	verLaps := data.DriverLaps(1)
	require.Len(t, verLaps, 2)
	assert.Nil(t, verLaps[0].LapTime)
	assert.Equal(t, model.CompoundSoft, verLaps[0].Compound)
	assert.Equal(t, 1, verLaps[0].Stint)

	// lap 3 of ALO is not covered by any stint
	aloLaps := data.DriverLaps(14)
	require.Len(t, aloLaps, 2)
	assert.Equal(t, model.CompoundUnknown, aloLaps[1].Compound)
}

func TestProviderSessionRace(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(&requests)
	defer srv.Close()
	p := newTestProvider(srv)

	data, err := p.Session(context.Background(), 2023, "monaco", "R")
	require.NoError(t, err)
	assert.Equal(t, "Race", data.SessionName)

	// race rows carry no qualifying segments
	assert.Nil(t, data.Results[0].Q1)
	assert.Nil(t, data.Results[0].BestLap)

	laps := data.DriverLaps(1)
	require.Len(t, laps, 3)
	assert.Equal(t, model.CompoundMedium, laps[0].Compound)
	assert.Equal(t, model.CompoundHard, laps[2].Compound)
	assert.Equal(t, 2, laps[2].Stint)
}

func TestProviderSessionByRound(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(&requests)
	defer srv.Close()
	p := newTestProvider(srv)

	// round 2 of the fixture season is Monaco
	data, err := p.Session(context.Background(), 2023, "2", "Q")
	require.NoError(t, err)
	assert.Equal(t, "Monaco Grand Prix", data.EventName)
	assert.Equal(t, 2, data.Round)

	_, err = p.Session(context.Background(), 2023, "7", "Q")
	assert.ErrorIs(t, err, timing.ErrNoData)
}

func TestProviderSessionMemoized(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(&requests)
	defer srv.Close()
	p := newTestProvider(srv)

	_, err := p.Session(context.Background(), 2023, "Monaco", "Q")
	require.NoError(t, err)
	seen := requests.Load()
	_, err = p.Session(context.Background(), 2023, " monaco ", "Qualifying")
	require.NoError(t, err)
	assert.Equal(t, seen, requests.Load(), "second lookup must be served from memory")
}

func TestProviderNoData(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(&requests)
	defer srv.Close()
	p := newTestProvider(srv)

	_, err := p.Session(context.Background(), 2023, "Spa", "Q")
	assert.ErrorIs(t, err, timing.ErrNoData)

	_, err = p.Session(context.Background(), 2023, "Monaco", "Sprint")
	assert.ErrorIs(t, err, timing.ErrNoData)
}

func TestProviderUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	p := newTestProvider(srv)

	_, err := p.Session(context.Background(), 2023, "Monaco", "Q")
	assert.ErrorIs(t, err, timing.ErrUpstream)
}

func TestLapTelemetry(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(&requests)
	defer srv.Close()
	p := newTestProvider(srv)

	lapTime := 88*time.Second + 241*time.Millisecond
	lap := model.Lap{
		DriverNumber: 1,
		LapNumber:    2,
		LapTime:      &lapTime,
		Start:        time.Date(2023, 5, 27, 14, 6, 40, 0, time.UTC),
	}
	tel, err := p.LapTelemetry(context.Background(), 9094, lap)
	require.NoError(t, err)
	require.Len(t, tel.Frames, 4)

	// distance is integrated from speed: 306/3.6 + 324/3.6 + 288/3.6
	assert.InDelta(t, 0.0, tel.Frames[0].Distance, 1e-9)
	assert.InDelta(t, 85.0, tel.Frames[1].Distance, 1e-6)
	assert.InDelta(t, 175.0, tel.Frames[2].Distance, 1e-6)
	assert.InDelta(t, 255.0, tel.Frames[3].Distance, 1e-6)
	assert.InDelta(t, 100.0, tel.Frames[0].Throttle, 1e-9)
	assert.InDelta(t, 100.0, tel.Frames[3].Brake, 1e-9)
}

func TestLapTelemetryNoData(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(&requests)
	defer srv.Close()
	p := newTestProvider(srv)

	// lap without a time window
	_, err := p.LapTelemetry(context.Background(), 9094, model.Lap{DriverNumber: 1})
	assert.ErrorIs(t, err, timing.ErrNoData)

	// no samples for this driver
	lapTime := 90 * time.Second
	lap := model.Lap{
		DriverNumber: 99,
		LapNumber:    1,
		LapTime:      &lapTime,
		Start:        time.Date(2023, 5, 27, 14, 6, 40, 0, time.UTC),
	}
	_, err = p.LapTelemetry(context.Background(), 9094, lap)
	assert.ErrorIs(t, err, timing.ErrNoData)
}

func TestClientUsesDiskCache(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(&requests)
	defer srv.Close()

	diskCache, err := diskcache.New(t.TempDir())
	require.NoError(t, err)
	client := NewClient(WithBaseURL(srv.URL), WithCache(diskCache))

	_, err = client.meetings(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())

	meetings, err := client.meetings(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load(), "second call must be served from disk")
	assert.Len(t, meetings, 2)
}
