package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"hinditts/pkg/trace"
	"hinditts/pkg/tts"
)

// GenerateRequest is the body of POST /api/generate-audio. The snake_case
// fields are the names used by the first editor frontend and are read only
// when the primary field is absent.
type GenerateRequest struct {
	Markup      string `json:"markup"`
	VoiceKey    string `json:"voiceKey"`
	ProviderKey string `json:"providerKey"`
	Language    string `json:"language,omitempty"`

	SSML     string `json:"ssml,omitempty"`
	VoiceID  string `json:"voice_id,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// SynthesisRequest is a validated GenerateRequest.
type SynthesisRequest struct {
	Markup      string
	VoiceKey    string
	ProviderKey string
	Language    string
}

// Validate checks required fields in order: markup, voiceKey, providerKey.
func (g *GenerateRequest) Validate() (SynthesisRequest, error) {
	req := SynthesisRequest{
		Markup:      firstNonEmpty(g.Markup, g.SSML),
		VoiceKey:    firstNonEmpty(g.VoiceKey, g.VoiceID),
		ProviderKey: firstNonEmpty(g.ProviderKey, g.Provider),
		Language:    firstNonEmpty(g.Language, tts.DefaultLanguage),
	}
	switch {
	case req.Markup == "":
		return req, &MissingFieldError{Field: "markup"}
	case req.VoiceKey == "":
		return req, &MissingFieldError{Field: "voiceKey"}
	case req.ProviderKey == "":
		return req, &MissingFieldError{Field: "providerKey"}
	}
	return req, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// maxRequestBody caps the JSON body of a synthesis request.
const maxRequestBody = 1 << 20

// SynthesisHandler serves POST /api/generate-audio.
type SynthesisHandler struct {
	registry *tts.Registry
}

// NewSynthesisHandler creates a new SynthesisHandler.
func NewSynthesisHandler(reg *tts.Registry) *SynthesisHandler {
	return &SynthesisHandler{registry: reg}
}

func (h *SynthesisHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "http.generate_audio")
	defer span.End()
	if id := RequestID(ctx); id != "" {
		span.SetAttributes(attribute.String(trace.AttrRequestID, id))
	}

	// 1. Validate
	var body GenerateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		trace.RecordError(span, err)
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	req, err := body.Validate()
	if err != nil {
		trace.RecordError(span, err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(
		attribute.String(trace.AttrTTSProvider, req.ProviderKey),
		attribute.String(trace.AttrTTSVoice, req.VoiceKey),
	)

	// 2. Resolve provider
	provider, err := h.registry.New(ctx, req.ProviderKey)
	if err != nil {
		trace.RecordError(span, err)
		slog.WarnContext(ctx, "Rejected synthesis request", "provider", req.ProviderKey, "error", err)
		if tts.IsUnknownProvider(err) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
		} else {
			writeJSONError(w, http.StatusInternalServerError, "Failed to generate audio: "+err.Error())
		}
		return
	}
	if c, ok := provider.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				slog.WarnContext(ctx, "Failed to close provider", "provider", req.ProviderKey, "error", err)
			}
		}()
	}

	// 3. Synthesize
	slog.InfoContext(ctx, "Generating audio", "provider", req.ProviderKey, "voice", req.VoiceKey, "language", req.Language)
	audio, err := provider.Synthesize(ctx, req.Markup, req.VoiceKey, req.Language)
	if err != nil {
		trace.RecordError(span, err)
		slog.ErrorContext(ctx, "Error generating audio",
			"provider", req.ProviderKey,
			"voice", req.VoiceKey,
			"request_id", RequestID(ctx),
			"error", err,
		)
		writeJSONError(w, http.StatusInternalServerError, "Failed to generate audio: "+err.Error())
		return
	}

	// 4. Respond
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `inline; filename="generated_audio.mp3"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		slog.WarnContext(ctx, "Failed to write audio response", "error", err)
	}
}
