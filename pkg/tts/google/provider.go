package google

import (
	"context"
	"log/slog"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"hinditts/pkg/config"
	"hinditts/pkg/tracker"
	"hinditts/pkg/tts"
)

const (
	Key  = "google"
	Name = "Google Cloud"
)

// Voices maps voice keys to Google Cloud voice names.
var Voices = tts.VoiceTable{
	{Key: "google-neural-male", ID: "hi-IN-Neural2-A"},
	{Key: "google-neural-female", ID: "hi-IN-Neural2-B"},
	{Key: "google-child", ID: "hi-IN-Standard-C"},
}

// synthesizer is the subset of *texttospeech.Client used here.
type synthesizer interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// Provider implements tts.Provider for Google Cloud Text-to-Speech.
type Provider struct {
	client  synthesizer
	tracker *tracker.Tracker
}

// NewProvider creates the Google client. If that fails the provider is still
// returned and every call fails with "Google Cloud client not initialized".
func NewProvider(ctx context.Context, cfg config.GoogleConfig, t *tracker.Tracker) *Provider {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		slog.Warn("Google Cloud TTS client unavailable", "error", err)
		return &Provider{tracker: t}
	}
	return &Provider{client: client, tracker: t}
}

// NewProviderWithClient wraps an existing client. A nil client behaves like a
// failed initialization.
func NewProviderWithClient(client synthesizer, t *tracker.Tracker) *Provider {
	return &Provider{client: client, tracker: t}
}

// Synthesize sends markup as SSML and returns MP3 audio.
func (p *Provider) Synthesize(ctx context.Context, markup, voiceKey, language string) ([]byte, error) {
	name := Voices.Resolve(voiceKey)
	return tts.Observe(ctx, p.tracker, Key, name, language, markup, func(ctx context.Context) ([]byte, error) {
		if p.client == nil {
			return nil, tts.NotInitialized(Key, Name)
		}

		resp, err := p.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
			Input: &texttospeechpb.SynthesisInput{
				InputSource: &texttospeechpb.SynthesisInput_Ssml{Ssml: markup},
			},
			Voice: &texttospeechpb.VoiceSelectionParams{
				LanguageCode: language,
				Name:         name,
			},
			AudioConfig: &texttospeechpb.AudioConfig{
				AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			},
		})
		if err != nil {
			return nil, tts.WrapProviderError(Key, "google synthesis failed", err)
		}
		return resp.GetAudioContent(), nil
	})
}

// Close releases the underlying gRPC connection.
func (p *Provider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
