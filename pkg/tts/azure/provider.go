package azure

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"

	"hinditts/pkg/config"
	"hinditts/pkg/tracker"
	"hinditts/pkg/tts"
)

const (
	Key  = "azure"
	Name = "Microsoft Azure"

	clientName   = "Azure Speech"
	userAgent    = "hinditts"
	outputFormat = "audio-24khz-160kbitrate-mono-mp3"
)

// Voices maps voice keys to Azure neural voices.
var Voices = tts.VoiceTable{
	{Key: "hari", ID: "hi-IN-MadhurNeural"},
	{Key: "ananya", ID: "hi-IN-SwaraNeural"},
	{Key: "karan", ID: "hi-IN-HemantNeural"},
}

// Provider implements tts.Provider for Azure Speech.
type Provider struct {
	key     string
	url     string
	format  string
	client  *http.Client
	tracker *tracker.Tracker
}

// NewProvider creates a new Azure Speech TTS provider. Without a
// subscription key every call fails with "Azure Speech client not initialized".
func NewProvider(cfg config.AzureSpeechConfig, t *tracker.Tracker) *Provider {
	url := cfg.Endpoint
	if url == "" {
		region := cfg.Region
		if region == "" {
			region = config.DefaultAzureRegion
		}
		url = fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region)
	}
	format := cfg.OutputFormat
	if format == "" {
		format = outputFormat
	}
	return &Provider{
		key:     cfg.Key,
		url:     url,
		format:  format,
		client:  &http.Client{},
		tracker: t,
	}
}

// Synthesize generates speech using Azure Speech.
func (p *Provider) Synthesize(ctx context.Context, markup, voiceKey, language string) ([]byte, error) {
	vid := Voices.Resolve(voiceKey)
	return tts.Observe(ctx, p.tracker, Key, vid, language, markup, func(ctx context.Context) ([]byte, error) {
		if p.key == "" {
			return nil, tts.NotInitialized(Key, clientName)
		}

		ssml := buildSSML(language, vid, markup)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewBufferString(ssml))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", p.key)
		req.Header.Set("Content-Type", "application/ssml+xml")
		req.Header.Set("X-Microsoft-OutputFormat", p.format)
		req.Header.Set("User-Agent", userAgent)

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, tts.WrapProviderError(Key, "api request failed", err)
		}
		defer resp.Body.Close()

		return tts.ReadAudio(Key, resp)
	})
}

// validateSSML checks if the SSML string is well-formed XML.
func validateSSML(ssml string) error {
	decoder := xml.NewDecoder(bytes.NewReader([]byte(ssml)))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return nil
}

const speakTemplate = `<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xmlns:mstts='https://www.w3.org/2001/mstts' xml:lang='%s'><voice name='%s'>%s</voice></speak>`

// buildSSML wraps the caller's markup in a speak/voice envelope for the
// resolved voice. Malformed markup is sent as plain text.
func buildSSML(language, vid, markup string) string {
	language, vid = escapeXML(language), escapeXML(vid)
	body := repairSSML(markup)
	ssml := fmt.Sprintf(speakTemplate, language, vid, body)
	if err := validateSSML(ssml); err != nil {
		// Entities already in the text are decoded first so they are not escaped twice.
		plain := html.UnescapeString(stripTags(body))
		return fmt.Sprintf(speakTemplate, language, vid, escapeXML(plain))
	}
	return ssml
}

// escapeXML escapes text for use in element content or a quoted attribute.
func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

var (
	reSpeakOpen  = regexp.MustCompile(`(?i)<speak[^>]*>`)
	reSpeakClose = regexp.MustCompile(`(?i)</speak>`)
	reVoiceOpen  = regexp.MustCompile(`(?i)<voice[^>]*>`)
	reVoiceClose = regexp.MustCompile(`(?i)</voice>`)
	reXMLDecl    = regexp.MustCompile(`<\?xml[^>]*\?>`)
	reTag        = regexp.MustCompile(`<[^>]*>`)
)

// repairSSML removes envelopes the editor already produced. buildSSML adds
// its own, and duplicates cause Azure 400 errors.
func repairSSML(text string) string {
	text = reXMLDecl.ReplaceAllString(text, "")
	text = reSpeakOpen.ReplaceAllString(text, "")
	text = reSpeakClose.ReplaceAllString(text, "")
	text = reVoiceOpen.ReplaceAllString(text, "")
	text = reVoiceClose.ReplaceAllString(text, "")
	return text
}

// stripTags removes all XML/HTML tags from the text.
func stripTags(text string) string {
	return reTag.ReplaceAllString(text, "")
}
