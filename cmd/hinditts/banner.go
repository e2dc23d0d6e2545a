package main

import (
	"bytes"
	"io"
	"text/template"

	"github.com/dimiro1/banner"

	"hinditts/pkg/config"
	"hinditts/pkg/version"
)

var bannerTemplate = template.Must(template.New("banner").Parse(`{{ "{{" }} .Title "Hindi TTS" "" 0 {{ "}}" }}
Version: {{ .Version }}   Listening on: {{ .Address }}

Endpoints:
  POST /api/generate-audio  - Generate speech from SSML
  GET  /api/providers       - List available providers
  GET  /api/health          - Health check
  GET  /api/stats           - Provider usage since startup

Environment Variables:
  ELEVENLABS_API_KEY             - ElevenLabs API key
  SARVAM_API_KEY                 - Sarvam AI API key
  GOOGLE_APPLICATION_CREDENTIALS - Google Cloud credentials
  AZURE_SPEECH_KEY               - Azure Speech key
  AZURE_SPEECH_REGION            - Azure region (default: {{ .Region }})

`))

// printBanner renders the startup banner. The first pass fills in config
// values, the second is the banner package's own template.
func printBanner(out io.Writer, cfg *config.Config) {
	var tpl bytes.Buffer
	err := bannerTemplate.Execute(&tpl, struct {
		Version string
		Address string
		Region  string
	}{
		Version: version.Version,
		Address: cfg.Server.Address,
		Region:  config.DefaultAzureRegion,
	})
	if err != nil {
		return
	}
	banner.Init(out, true, false, &tpl)
}
