package companion

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/advisory"
)

// RenderState is what the AQI widget shows. The states are mutually exclusive.
type RenderState string

const (
	RenderLoading RenderState = "loading"
	RenderError   RenderState = "error"
	RenderReady   RenderState = "ready"
)

// ErrSuperseded is returned by Refresh when a later refresh was issued while
// this one was in flight. Its result was discarded.
var ErrSuperseded = errors.New("companion: refresh superseded by a newer request")

// Fetcher retrieves the AQI for a coordinate.
type Fetcher interface {
	FetchAQI(ctx context.Context, lat, lon float64) (Reading, error)
}

// View is a consistent snapshot of the session.
type View struct {
	Render      RenderState
	Reading     Reading
	Err         error
	Displayed   advisory.PetState
	Susceptible bool
	Answered    bool
}

// Session owns all mutable client state for one user session.
type Session struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu          sync.Mutex
	seq         uint64
	render      RenderState
	reading     Reading
	lastErr     error
	displayed   advisory.PetState
	susceptible bool
	answered    bool
}

// NewSession starts in the loading state with a neutral pet.
func NewSession(fetcher Fetcher, logger *slog.Logger) *Session {
	return &Session{
		fetcher:   fetcher,
		logger:    logger.With("component", "companion.session"),
		render:    RenderLoading,
		displayed: advisory.PetNeutral,
	}
}

// AnswerSusceptibility records the one-time prompt answer. Later answers are
// ignored and reported with false.
func (s *Session) AnswerSusceptibility(susceptible bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answered {
		return false
	}
	s.susceptible = susceptible
	s.answered = true
	return true
}

// Display changes the pet pose the user is looking at.
func (s *Session) Display(state advisory.PetState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayed = state
}

// Refresh issues exactly one fetch for the coordinate. A result is applied
// only if no later Refresh was issued in the meantime, regardless of which
// call completes first.
func (s *Session) Refresh(ctx context.Context, lat, lon float64) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.render = RenderLoading
	s.lastErr = nil
	s.mu.Unlock()

	reading, err := s.fetcher.FetchAQI(ctx, lat, lon)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.Debug("discarding stale aqi result", "seq", seq, "latest", s.seq)
		return ErrSuperseded
	}
	if err != nil {
		s.render = RenderError
		s.lastErr = err
		s.logger.Warn("aqi refresh failed", "lat", lat, "lon", lon, "error", err)
		return err
	}
	s.reading = reading
	s.render = RenderReady
	return nil
}

// Snapshot returns the current state under the lock.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := View{
		Render:      s.render,
		Err:         s.lastErr,
		Displayed:   s.displayed,
		Susceptible: s.susceptible,
		Answered:    s.answered,
	}
	if s.render == RenderReady {
		view.Reading = s.reading
	}
	return view
}

// Advice renders the speech bubble. The composer only runs once a reading is
// ready; while loading the loading message is returned, and the fetch error
// is returned in the error state.
func (s *Session) Advice() (string, error) {
	view := s.Snapshot()
	switch view.Render {
	case RenderReady:
		return advisory.Render(advisory.Compose(view.Displayed, view.Reading.AQI, view.Susceptible)), nil
	case RenderError:
		return "", view.Err
	default:
		return advisory.LoadingMessage, nil
	}
}
