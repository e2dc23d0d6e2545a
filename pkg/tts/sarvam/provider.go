package sarvam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"hinditts/pkg/config"
	"hinditts/pkg/tracker"
	"hinditts/pkg/tts"
)

const (
	Key  = "sarvam"
	Name = "Sarvam AI"
)

// Voices are Sarvam's own voice ids.
var Voices = tts.VoiceTable{
	{Key: "ravi", ID: "ravi"},
	{Key: "anjali", ID: "anjali"},
	{Key: "vijay", ID: "vijay"},
}

// Provider implements tts.Provider for Sarvam AI.
type Provider struct {
	apiKey  string
	url     string
	model   string
	client  *http.Client
	tracker *tracker.Tracker
}

// NewProvider creates a new Sarvam AI TTS provider.
func NewProvider(cfg config.SarvamConfig, t *tracker.Tracker) *Provider {
	return &Provider{
		apiKey:  cfg.Key,
		url:     strings.TrimRight(cfg.BaseURL, "/") + "/text-to-speech",
		model:   cfg.Model,
		client:  &http.Client{},
		tracker: t,
	}
}

type requestBody struct {
	Text     string `json:"text"`
	VoiceID  string `json:"voice_id"`
	Language string `json:"language"`
	Model    string `json:"model"`
}

// Synthesize generates speech using Sarvam AI.
func (p *Provider) Synthesize(ctx context.Context, markup, voiceKey, language string) ([]byte, error) {
	vid := Voices.Resolve(voiceKey)
	return tts.Observe(ctx, p.tracker, Key, vid, language, markup, func(ctx context.Context) ([]byte, error) {
		jsonData, err := json.Marshal(requestBody{
			Text:     markup,
			VoiceID:  vid,
			Language: language,
			Model:    p.model,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, tts.WrapProviderError(Key, "api request failed", err)
		}
		defer resp.Body.Close()

		return tts.ReadAudio(Key, resp)
	})
}
