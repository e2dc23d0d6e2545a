package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"hinditts/pkg/config"
	"hinditts/pkg/tracker"
	"hinditts/pkg/tts"
)

const (
	// Key is the provider key callers send in providerKey.
	Key = "elevenlabs"
	// Name is the display name in the provider catalog.
	Name = "ElevenLabs"
)

// Voices maps voice keys to ElevenLabs voice ids. The ids are placeholders
// until replaced through providers.elevenlabs.voices or ELEVENLABS_<KEY>_ID.
var Voices = tts.VoiceTable{
	{Key: "adarsh", ID: "voice_id_1"},
	{Key: "priya", ID: "voice_id_2"},
	{Key: "akshay", ID: "voice_id_3"},
}

// Provider implements tts.Provider for ElevenLabs.
type Provider struct {
	apiKey   string
	baseURL  string
	modelID  string
	settings voiceSettings
	voices   tts.VoiceTable
	client   *http.Client
	tracker  *tracker.Tracker
}

// NewProvider creates a new ElevenLabs TTS provider.
// A missing key is not checked here; the vendor rejects the call.
func NewProvider(cfg config.ElevenLabsConfig, t *tracker.Tracker) *Provider {
	return &Provider{
		apiKey:  cfg.Key,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		modelID: cfg.Model,
		settings: voiceSettings{
			Stability:       cfg.Stability,
			SimilarityBoost: cfg.SimilarityBoost,
		},
		voices:  Voices.WithOverrides(cfg.Voices),
		client:  &http.Client{},
		tracker: t,
	}
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// requestBody represents the JSON payload for ElevenLabs text-to-speech.
type requestBody struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Synthesize generates speech using ElevenLabs. The markup is sent as text;
// ElevenLabs does not interpret SSML. language is unused by the vendor.
func (p *Provider) Synthesize(ctx context.Context, markup, voiceKey, language string) ([]byte, error) {
	vid := p.voices.Resolve(voiceKey)
	return tts.Observe(ctx, p.tracker, Key, vid, language, markup, func(ctx context.Context) ([]byte, error) {
		return p.call(ctx, vid, markup)
	})
}

func (p *Provider) call(ctx context.Context, vid, markup string) ([]byte, error) {
	jsonData, err := json.Marshal(requestBody{
		Text:          markup,
		ModelID:       p.modelID,
		VoiceSettings: p.settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s", p.baseURL, url.PathEscape(vid))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, tts.WrapProviderError(Key, "api request failed", err)
	}
	defer resp.Body.Close()

	return tts.ReadAudio(Key, resp)
}
