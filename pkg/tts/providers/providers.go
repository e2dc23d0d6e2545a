// Package providers wires the vendor adapters into a tts.Registry.
package providers

import (
	"context"

	"hinditts/pkg/config"
	"hinditts/pkg/tracker"
	"hinditts/pkg/tts"
	"hinditts/pkg/tts/azure"
	"hinditts/pkg/tts/elevenlabs"
	"hinditts/pkg/tts/google"
	"hinditts/pkg/tts/sarvam"
)

// NewRegistry builds the registry of the four supported vendors, in catalog
// order. Factories read cfg on every call, so each request gets a fresh
// adapter.
func NewRegistry(cfg *config.ProvidersConfig, t *tracker.Tracker) (*tts.Registry, error) {
	return tts.NewRegistry(
		tts.Entry{
			Key:    elevenlabs.Key,
			Name:   elevenlabs.Name,
			Voices: elevenlabs.Voices.Keys(),
			New: func(context.Context) tts.Provider {
				return elevenlabs.NewProvider(cfg.ElevenLabs, t)
			},
		},
		tts.Entry{
			Key:    sarvam.Key,
			Name:   sarvam.Name,
			Voices: sarvam.Voices.Keys(),
			New: func(context.Context) tts.Provider {
				return sarvam.NewProvider(cfg.Sarvam, t)
			},
		},
		tts.Entry{
			Key:    google.Key,
			Name:   google.Name,
			Voices: google.Voices.Keys(),
			New: func(ctx context.Context) tts.Provider {
				return google.NewProvider(ctx, cfg.Google, t)
			},
		},
		tts.Entry{
			Key:    azure.Key,
			Name:   azure.Name,
			Voices: azure.Voices.Keys(),
			New: func(context.Context) tts.Provider {
				return azure.NewProvider(cfg.Azure, t)
			},
		},
	)
}
