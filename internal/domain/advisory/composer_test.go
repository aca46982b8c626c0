package advisory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/errors"
)

func TestComposeNeutralAtVeryUnhealthy(t *testing.T) {
	got := Compose(PetNeutral, 250, false)
	require.Equal(t, []string{maskNeeded, reduceNeeded}, got)
}

func TestComposeOrderIsFixed(t *testing.T) {
	got := Compose(PetActivityLimited, 350, false)
	require.Equal(t, []string{maskNeeded, reduceNotEnough, indoorsNeeded}, got)
}

func TestComposeReassurance(t *testing.T) {
	require.Equal(t, []string{maskNotNeeded}, Compose(PetMaskOn, 10, false))
	require.Equal(t, []string{reduceNotNeeded}, Compose(PetActivityLimited, 10, false))
	require.Equal(t, []string{outdoorsSafe}, Compose(PetSheltering, 10, false))
	require.Equal(t, []string{maskNeeded, reduceNeeded, outdoorsWithCare}, Compose(PetSheltering, 180, false))
}

func TestComposeEmptyOnlyWhenRequirementsMatch(t *testing.T) {
	for _, state := range States {
		for _, aqi := range sampleAQIs {
			for _, susceptible := range []bool{false, true} {
				messages := Compose(state, aqi, susceptible)
				match := Classify(aqi, susceptible) == RequirementOf(state)
				require.Equal(t, match, len(messages) == 0, "state %s aqi %d susceptible %v", state, aqi, susceptible)
				require.Equal(t, messages, Compose(state, aqi, susceptible))
			}
		}
	}
}

func TestRender(t *testing.T) {
	require.Equal(t, NoActionNeeded, Render(nil))
	require.Equal(t, "a | b", Render([]string{"a", "b"}))
}

func TestParsePetState(t *testing.T) {
	cases := map[string]PetState{
		"":                 PetNeutral,
		"neutral":          PetNeutral,
		"  Mask_On ":       PetMaskOn,
		"happy":            PetNeutral,
		"sad":              PetDistressed,
		"lpa":              PetActivityLimited,
		"re":               PetSheltering,
		"activity_limited": PetActivityLimited,
	}
	for in, want := range cases {
		got, err := ParsePetState(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParsePetState("sleeping")
	require.Error(t, err)
}

func TestServiceAdvise(t *testing.T) {
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	aqi := 250

	resp, err := svc.Advise(context.Background(), Request{State: "happy", AQI: &aqi})
	require.NoError(t, err)
	require.Equal(t, PetNeutral, resp.State)
	require.Equal(t, CategoryVeryUnhealthy, resp.Category)
	require.Equal(t, Requirement{Mask: true, ReducedActivity: true}, resp.Required)
	require.True(t, resp.Depicted.None())
	require.Equal(t, maskNeeded+Separator+reduceNeeded, resp.Text)
}

func TestServiceAdviseMatchingState(t *testing.T) {
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	aqi := 20

	resp, err := svc.Advise(context.Background(), Request{State: "neutral", AQI: &aqi})
	require.NoError(t, err)
	require.Empty(t, resp.Messages)
	require.Equal(t, NoActionNeeded, resp.Text)
}

func TestServiceAdviseRejectsBadInput(t *testing.T) {
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	negative := -1
	valid := 40

	_, err := svc.Advise(context.Background(), Request{State: "neutral"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Advise(context.Background(), Request{State: "neutral", AQI: &negative})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Advise(context.Background(), Request{State: "dancing", AQI: &valid})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}
