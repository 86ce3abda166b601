package openf1

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/pitwall/f1insight/log"
	"github.com/pitwall/f1insight/pkg/model"
	"github.com/pitwall/f1insight/pkg/timing"
	"github.com/pitwall/f1insight/pkg/utils/cache"
	"github.com/pitwall/f1insight/pkg/utils/cache/loadercache"
)

// Provider implements timing.Provider on top of the OpenF1 API.
// Assembled sessions are memoized so consecutive tool calls against
// the same session do not repeat the joins.
type Provider struct {
	client   *Client
	l        *log.Logger
	ttl      time.Duration
	sessions cache.Cache[sessionQuery, model.SessionData]
}

type sessionQuery struct {
	year    int
	race    string
	session string
}

type Option func(*Provider)

func WithClient(arg *Client) Option {
	return func(p *Provider) { p.client = arg }
}

func WithLogger(arg *log.Logger) Option {
	return func(p *Provider) { p.l = arg }
}

func WithSessionTTL(arg time.Duration) Option {
	return func(p *Provider) { p.ttl = arg }
}

func NewProvider(opts ...Option) *Provider {
	ret := &Provider{
		l:   log.Default().Named("timing.openf1"),
		ttl: time.Hour,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.client == nil {
		ret.client = NewClient()
	}
	ret.sessions = loadercache.New(
		loadercache.WithLoader[sessionQuery, model.SessionData](ret.loadSession),
		loadercache.WithExpiration[sessionQuery, model.SessionData](ret.ttl),
		loadercache.WithLogger[sessionQuery, model.SessionData](ret.l.Named("sessions")),
	)
	return ret
}

var _ timing.Provider = (*Provider)(nil)

//nolint:whitespace // can't make both editor and linter happy
func (p *Provider) Session(
	ctx context.Context, year int, race, session string,
) (*model.SessionData, error) {
	query := sessionQuery{
		year:    year,
		race:    strings.ToLower(strings.TrimSpace(race)),
		session: mapSessionName(session),
	}
	return p.sessions.Get(ctx, query)
}

//nolint:whitespace // can't make both editor and linter happy
func (p *Provider) LapTelemetry(
	ctx context.Context, sessionKey int, lap model.Lap,
) (*model.LapTelemetry, error) {
	if lap.Start.IsZero() || lap.LapTime == nil {
		return nil, fmt.Errorf("%w: lap %d of driver %d has no usable time window",
			timing.ErrNoData, lap.LapNumber, lap.DriverNumber)
	}
	samples, err := p.client.carData(ctx,
		sessionKey, lap.DriverNumber, lap.Start, lap.Start.Add(*lap.LapTime))
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no car data for driver %d lap %d",
			timing.ErrNoData, lap.DriverNumber, lap.LapNumber)
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Date.Before(samples[j].Date.Time)
	})
	// the API has no distance channel, integrate it from speed
	frames := make([]model.TelemetryFrame, 0, len(samples))
	dist := 0.0
	prev := samples[0].Date.Time
	for _, s := range samples {
		if dt := s.Date.Sub(prev).Seconds(); dt > 0 {
			dist += s.Speed / 3.6 * dt
		}
		prev = s.Date.Time
		frames = append(frames, model.TelemetryFrame{
			Time:     s.Date.Time,
			Distance: dist,
			Speed:    s.Speed,
			Throttle: s.Throttle,
			Brake:    s.Brake,
		})
	}
	return &model.LapTelemetry{
		DriverNumber: lap.DriverNumber,
		LapNumber:    lap.LapNumber,
		Frames:       frames,
	}, nil
}

// mapSessionName resolves the common shorthands. Unknown values are
// passed through and matched against the session names as delivered.
func mapSessionName(arg string) string {
	switch strings.ToUpper(strings.TrimSpace(arg)) {
	case "Q", "Q1", "Q2", "Q3", "QUALIFYING":
		return "Qualifying"
	case "R", "RACE":
		return "Race"
	case "S", "SPRINT":
		return "Sprint"
	case "SQ", "SPRINT QUALIFYING", "SPRINT SHOOTOUT":
		return "Sprint Qualifying"
	case "FP1", "PRACTICE 1":
		return "Practice 1"
	case "FP2", "PRACTICE 2":
		return "Practice 2"
	case "FP3", "PRACTICE 3":
		return "Practice 3"
	default:
		return strings.TrimSpace(arg)
	}
}

//nolint:funlen // readability
func (p *Provider) loadSession(ctx context.Context, q sessionQuery) (*model.SessionData, error) {
	meetings, err := p.client.meetings(ctx, q.year)
	if err != nil {
		return nil, err
	}
	if len(meetings) == 0 {
		return nil, fmt.Errorf("%w: no meetings found for year %d", timing.ErrNoData, q.year)
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].DateStart.Before(meetings[j].DateStart.Time)
	})
	round, found := findMeeting(meetings, q.race)
	if !found {
		return nil, fmt.Errorf("%w: no race matching %q in the %d season",
			timing.ErrNoData, q.race, q.year)
	}
	meeting := meetings[round-1]
	p.l.Debug("resolved meeting",
		log.String("name", meeting.MeetingName),
		log.Int("round", round),
		log.Int("meetingKey", meeting.MeetingKey))

	sessions, err := p.client.sessions(ctx, meeting.MeetingKey)
	if err != nil {
		return nil, err
	}
	sess, found := lo.Find(sessions, func(s Session) bool {
		return strings.EqualFold(s.SessionName, q.session)
	})
	if !found {
		return nil, fmt.Errorf("%w: no session %q at %s",
			timing.ErrNoData, q.session, meeting.MeetingName)
	}

	drivers, err := p.client.drivers(ctx, sess.SessionKey)
	if err != nil {
		return nil, err
	}
	if len(drivers) == 0 {
		return nil, fmt.Errorf("%w: no drivers for session %d",
			timing.ErrNoData, sess.SessionKey)
	}
	results, err := p.client.sessionResult(ctx, sess.SessionKey)
	if err != nil {
		return nil, err
	}
	laps, err := p.client.laps(ctx, sess.SessionKey)
	if err != nil {
		return nil, err
	}
	stints, err := p.client.stints(ctx, sess.SessionKey)
	if err != nil {
		return nil, err
	}

	data := &model.SessionData{
		Year:        q.year,
		EventName:   meeting.MeetingName,
		Round:       round,
		SessionName: sess.SessionName,
		SessionKey:  sess.SessionKey,
		Drivers:     assembleDrivers(drivers),
		Results:     assembleResults(results, sess.SessionName),
		Laps:        assembleLaps(laps, stints),
	}
	return data, nil
}

// findMeeting returns the 1-based round of the first meeting whose
// name, circuit or country matches the (lowercased) race identifier.
// A numeric identifier is taken as the round itself.
func findMeeting(meetings []Meeting, race string) (int, bool) {
	if round, err := strconv.Atoi(race); err == nil {
		if round >= 1 && round <= len(meetings) {
			return round, true
		}
		return 0, false
	}
	matches := func(m Meeting) bool {
		for _, candidate := range []string{
			m.MeetingName, m.MeetingOfficialName, m.CircuitShortName, m.CountryName,
		} {
			if strings.Contains(strings.ToLower(candidate), race) {
				return true
			}
		}
		return false
	}
	for i, m := range meetings {
		if matches(m) {
			return i + 1, true
		}
	}
	return 0, false
}

func assembleDrivers(drivers []Driver) []model.Driver {
	return lo.Map(drivers, func(d Driver, _ int) model.Driver {
		return model.Driver{
			Number:       d.DriverNumber,
			Abbreviation: d.NameAcronym,
			FullName:     d.FullName,
			TeamName:     d.TeamName,
			TeamColor:    d.TeamColour,
		}
	})
}

func assembleResults(results []SessionResult, sessionName string) []model.ResultRow {
	isQualifying := strings.Contains(strings.ToLower(sessionName), "qualifying")
	rows := make([]model.ResultRow, 0, len(results))
	for _, r := range results {
		row := model.ResultRow{
			Position:     r.Position,
			DriverNumber: r.DriverNumber,
		}
		if isQualifying {
			row.Q1 = secondsToDuration(r.Duration.Segment(0))
			row.Q2 = secondsToDuration(r.Duration.Segment(1))
			row.Q3 = secondsToDuration(r.Duration.Segment(2))
			row.BestLap = minDuration(row.Q1, row.Q2, row.Q3)
		}
		rows = append(rows, row)
	}
	return rows
}

// assembleLaps joins the stint ranges onto the laps. Laps not covered
// by any stint keep stint 0 and an unknown compound.
func assembleLaps(laps []Lap, stints []Stint) []model.Lap {
	stintsByDriver := lo.GroupBy(stints, func(s Stint) int { return s.DriverNumber })
	ret := make([]model.Lap, 0, len(laps))
	for _, l := range laps {
		entry := model.Lap{
			DriverNumber: l.DriverNumber,
			LapNumber:    l.LapNumber,
			LapTime:      secondsToDuration(l.LapDuration),
			Compound:     model.CompoundUnknown,
			Start:        l.DateStart.Time,
		}
		for _, s := range stintsByDriver[l.DriverNumber] {
			if l.LapNumber >= s.LapStart && l.LapNumber <= s.LapEnd {
				entry.Stint = s.StintNumber
				entry.Compound = model.ParseCompound(s.Compound)
				break
			}
		}
		ret = append(ret, entry)
	}
	return ret
}

// secondsToDuration converts the API seconds value, rounded to
// microseconds to avoid float artifacts below the millisecond.
func secondsToDuration(arg *float64) *time.Duration {
	if arg == nil {
		return nil
	}
	d := time.Duration(math.Round(*arg*1e6)) * time.Microsecond
	return &d
}

func minDuration(durations ...*time.Duration) *time.Duration {
	var best *time.Duration
	for _, d := range durations {
		if d == nil {
			continue
		}
		if best == nil || *d < *best {
			best = d
		}
	}
	return best
}
