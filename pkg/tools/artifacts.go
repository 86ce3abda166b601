package tools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pitwall/f1insight/log"
)

// DefaultArtifactDir is used when no output directory is configured.
const DefaultArtifactDir = "f1_visualizations"

// OnArtifact is invoked with the path of every chart file written.
type OnArtifact func(path string)

// ArtifactStore writes chart files to the output directory and
// notifies the configured callback.
type ArtifactStore struct {
	dir        string
	onArtifact OnArtifact
	l          *log.Logger
}

type ArtifactOption func(*ArtifactStore)

func WithOnArtifact(cb OnArtifact) ArtifactOption {
	return func(s *ArtifactStore) {
		s.onArtifact = cb
	}
}

func WithArtifactLogger(arg *log.Logger) ArtifactOption {
	return func(s *ArtifactStore) {
		s.l = arg
	}
}

func NewArtifactStore(dir string, opts ...ArtifactOption) *ArtifactStore {
	ret := &ArtifactStore{
		dir:        dir,
		onArtifact: func(string) {},
		l:          log.Default().Named("artifacts"),
	}
	if ret.dir == "" {
		ret.dir = DefaultArtifactDir
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (s *ArtifactStore) Dir() string { return s.dir }

// Save renders into a file with the given name. Partially written
// files are removed on render errors.
func (s *ArtifactStore) Save(name string, render func(w io.Writer) error) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	s.l.Debug("artifact written", log.String("path", path))
	s.onArtifact(path)
	return path, nil
}

// QualifyingChartName builds the deterministic file name of the
// qualifying comparison chart.
func QualifyingChartName(year int, race, session string) string {
	return fmt.Sprintf("f1_qualifying_%d_%s_%s_top3_comparison.png",
		year, sanitizeName(race), sanitizeName(session))
}

// StrategyChartName builds the deterministic file name of the tyre
// strategy chart.
func StrategyChartName(year int, race, session string) string {
	return fmt.Sprintf("f1_strategy_%d_%s_%s_stints.png",
		year, sanitizeName(race), sanitizeName(session))
}

// sanitizeName keeps file names predictable: whitespace becomes an
// underscore, anything outside [A-Za-z0-9_-] is dropped.
func sanitizeName(arg string) string {
	sb := strings.Builder{}
	for _, r := range strings.TrimSpace(arg) {
		switch {
		case r == ' ' || r == '\t':
			sb.WriteRune('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '-':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
