package advisory

import (
	"context"
	"log/slog"

	apperrors "github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/errors"
)

// Service exposes the advisory engine to transports.
type Service interface {
	Advise(ctx context.Context, req Request) (Response, error)
}

type service struct {
	logger *slog.Logger
}

// NewService wires up the advisory domain.
func NewService(logger *slog.Logger) Service {
	return &service{logger: logger.With("component", "advisory.service")}
}

func (s *service) Advise(_ context.Context, req Request) (Response, error) {
	state, err := ParsePetState(req.State)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "state must be one of neutral, distressed, mask_on, activity_limited, sheltering", err)
	}
	if req.AQI == nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "aqi is required", nil)
	}
	aqi := *req.AQI
	if aqi < 0 {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "aqi cannot be negative", nil)
	}

	messages := Compose(state, aqi, req.Susceptible)
	s.logger.Debug("advisory composed", "state", state, "aqi", aqi, "susceptible", req.Susceptible, "messages", len(messages))

	return Response{
		State:       state,
		AQI:         aqi,
		Category:    CategoryFor(aqi),
		Susceptible: req.Susceptible,
		Required:    Classify(aqi, req.Susceptible),
		Depicted:    RequirementOf(state),
		Messages:    messages,
		Text:        Render(messages),
	}, nil
}
