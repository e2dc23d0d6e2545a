package trace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys.
const (
	AttrTTSProvider  = "tts.provider"
	AttrTTSVoice     = "tts.voice"
	AttrTTSLanguage  = "tts.language"
	AttrMarkupLength = "tts.markup_length"
	AttrAudioSize    = "audio.size"
	AttrRequestID    = "request.id"
)

// InstrumentTTSRequest creates a span around one vendor synthesis call.
func InstrumentTTSRequest(ctx context.Context, provider, voice, language string, markupLen int) (context.Context, trace.Span) {
	return StartSpan(ctx, "tts.synthesize",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrTTSProvider, provider),
			attribute.String(AttrTTSVoice, voice),
			attribute.String(AttrTTSLanguage, language),
			attribute.Int(AttrMarkupLength, markupLen),
		),
	)
}

// EndTTSRequest closes a span opened by InstrumentTTSRequest.
func EndTTSRequest(span trace.Span, audioSize int, err error) {
	if err != nil {
		RecordError(span, err)
	} else {
		span.SetAttributes(attribute.Int(AttrAudioSize, audioSize))
	}
	span.End()
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
