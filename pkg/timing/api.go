package timing

import (
	"context"
	"errors"

	"github.com/pitwall/f1insight/pkg/model"
)

var (
	// ErrNoData signals that the source has no data for the request,
	// for example an unknown race name or a session not yet run.
	ErrNoData = errors.New("no data available")
	// ErrUpstream signals a failed request to the timing source.
	ErrUpstream = errors.New("upstream request failed")
)

// Provider delivers session data from a timing source.
type Provider interface {
	// Session resolves year and race name to a single session and
	// returns its header, drivers, classification and laps.
	Session(ctx context.Context, year int, race, session string) (*model.SessionData, error)
	// LapTelemetry returns the car data samples recorded during the
	// given lap. The lap must carry a start time.
	LapTelemetry(ctx context.Context, sessionKey int, lap model.Lap) (*model.LapTelemetry, error)
}
