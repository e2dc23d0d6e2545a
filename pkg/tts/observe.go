package tts

import (
	"context"
	"errors"

	"hinditts/pkg/trace"
	"hinditts/pkg/tracker"
)

// Observe runs one vendor call inside a tts.synthesize span and records the
// outcome in the tracker and the server log. t may be nil.
func Observe(ctx context.Context, t *tracker.Tracker, provider, voiceID, language, markup string,
	call func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	ctx, span := trace.InstrumentTTSRequest(ctx, provider, voiceID, language, len(markup))
	data, err := call(ctx)
	trace.EndTTSRequest(span, len(data), err)

	switch {
	case errors.Is(err, ErrClientNotInitialized):
		t.TrackUnavailable(provider)
	case err != nil:
		t.TrackFailure(provider, err)
	default:
		t.TrackSuccess(provider, len(data))
	}
	Log(ctx, provider, voiceID, markup, len(data), err)

	if err != nil {
		return nil, err
	}
	return data, nil
}
