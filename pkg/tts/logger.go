package tts

import (
	"context"
	"log/slog"
)

// Log records one vendor call. The markup itself is only logged at debug
// level; request history is never persisted.
// This is a shared helper for all adapters so vendor calls look the same in the logs.
func Log(ctx context.Context, provider, voiceID, markup string, audioBytes int, err error) {
	if err != nil {
		slog.WarnContext(ctx, "TTS vendor call failed",
			"provider", provider,
			"voice", voiceID,
			"markup_len", len(markup),
			"error", err,
		)
	} else {
		slog.DebugContext(ctx, "TTS vendor call succeeded",
			"provider", provider,
			"voice", voiceID,
			"audio_bytes", audioBytes,
		)
	}
	slog.DebugContext(ctx, "TTS markup", "provider", provider, "markup", markup)
}
