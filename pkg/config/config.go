package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAzureRegion is used when neither the file nor AZURE_SPEECH_REGION names one.
const DefaultAzureRegion = "centralindia"

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Trace     TraceConfig     `yaml:"trace"`
	Providers ProvidersConfig `yaml:"providers"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string     `yaml:"address"`
	ReadTimeout  Duration   `yaml:"read_timeout"`
	WriteTimeout Duration   `yaml:"write_timeout"`
	IdleTimeout  Duration   `yaml:"idle_timeout"`
	CORS         CORSConfig `yaml:"cors"`
}

// CORSConfig holds cross-origin settings for the browser editor.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// TraceConfig holds OpenTelemetry settings.
type TraceConfig struct {
	Exporter     string  `yaml:"exporter"` // "none", "stdout", "otlp"
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	SamplingRate float64 `yaml:"sampling_rate"`
	Environment  string  `yaml:"environment"`
}

// ProvidersConfig holds per-vendor credentials and endpoints.
type ProvidersConfig struct {
	ElevenLabs ElevenLabsConfig  `yaml:"elevenlabs"`
	Sarvam     SarvamConfig      `yaml:"sarvam"`
	Google     GoogleConfig      `yaml:"google"`
	Azure      AzureSpeechConfig `yaml:"azure"`
}

// ElevenLabsConfig holds settings for ElevenLabs TTS.
type ElevenLabsConfig struct {
	Key             string            `yaml:"key"`
	BaseURL         string            `yaml:"base_url"`
	Model           string            `yaml:"model"`
	Stability       float64           `yaml:"stability"`
	SimilarityBoost float64           `yaml:"similarity_boost"`
	Voices          map[string]string `yaml:"voices"` // voice key -> ElevenLabs voice id
}

// SarvamConfig holds settings for Sarvam AI TTS.
type SarvamConfig struct {
	Key     string `yaml:"key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// GoogleConfig holds settings for Google Cloud Text-to-Speech.
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	Endpoint        string `yaml:"endpoint"` // optional override, e.g. regional endpoint
}

// AzureSpeechConfig holds settings for Azure Speech TTS.
type AzureSpeechConfig struct {
	Key          string `yaml:"key"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"` // optional, defaults to the regional endpoint
	OutputFormat string `yaml:"output_format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      "0.0.0.0:5000",
			ReadTimeout:  Duration(15 * time.Second),
			WriteTimeout: Duration(120 * time.Second),
			IdleTimeout:  Duration(60 * time.Second),
			CORS: CORSConfig{
				AllowedOrigins: []string{"*"},
			},
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
		},
		Trace: TraceConfig{
			Exporter:     "none",
			OTLPEndpoint: "localhost:4317",
			SamplingRate: 1.0,
			Environment:  "development",
		},
		Providers: ProvidersConfig{
			ElevenLabs: ElevenLabsConfig{
				BaseURL:         "https://api.elevenlabs.io/v1",
				Model:           "eleven_monolingual_v1",
				Stability:       0.5,
				SimilarityBoost: 0.75,
			},
			Sarvam: SarvamConfig{
				BaseURL: "https://api.sarvam.ai/v1",
				Model:   "hindi-v1",
			},
			Azure: AzureSpeechConfig{
				OutputFormat: "audio-24khz-160kbitrate-mono-mp3",
			},
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// Credentials missing from the file are taken from the environment, but are
// never written back to disk.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var elevenLabsVoiceEnv = regexp.MustCompile(`^ELEVENLABS_([A-Z0-9]+)_ID$`)

// applyEnv fills empty credentials from the environment.
func applyEnv(cfg *Config) {
	p := &cfg.Providers
	setIfEmpty(&p.ElevenLabs.Key, "ELEVENLABS_API_KEY")
	setIfEmpty(&p.Sarvam.Key, "SARVAM_API_KEY")
	setIfEmpty(&p.Google.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	setIfEmpty(&p.Azure.Key, "AZURE_SPEECH_KEY")
	setIfEmpty(&p.Azure.Region, "AZURE_SPEECH_REGION")
	if p.Azure.Region == "" {
		p.Azure.Region = DefaultAzureRegion
	}

	// ELEVENLABS_ADARSH_ID=... overrides the id behind voice key "adarsh".
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			continue
		}
		m := elevenLabsVoiceEnv.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		key := strings.ToLower(m[1])
		if p.ElevenLabs.Voices == nil {
			p.ElevenLabs.Voices = make(map[string]string)
		}
		if p.ElevenLabs.Voices[key] == "" {
			p.ElevenLabs.Voices[key] = value
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		host, _, err := net.SplitHostPort(cfg.Server.Address)
		if err != nil {
			host = "0.0.0.0"
		}
		cfg.Server.Address = net.JoinHostPort(host, port)
	}
}

func setIfEmpty(dst *string, env string) {
	if *dst != "" {
		return
	}
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	switch c.Trace.Exporter {
	case "", "none", "stdout", "otlp":
	default:
		return fmt.Errorf("invalid trace.exporter '%s': must be one of none, stdout, otlp", c.Trace.Exporter)
	}
	if c.Trace.SamplingRate < 0 || c.Trace.SamplingRate > 1 {
		return fmt.Errorf("invalid trace.sampling_rate %v: must be within [0, 1]", c.Trace.SamplingRate)
	}
	for _, lvl := range []string{c.Log.Server.Level, c.Log.Requests.Level} {
		if !isValidLevel(lvl) {
			return fmt.Errorf("invalid log level '%s'", lvl)
		}
	}
	return nil
}

func isValidLevel(s string) bool {
	switch strings.ToUpper(s) {
	case "", "DEBUG", "INFO", "WARN", "ERROR":
		return true
	}
	return false
}

// MissingCredentials returns the provider keys that have no credentials
// configured. Those providers still start; their calls fail at request time.
func (c *Config) MissingCredentials() []string {
	var missing []string
	p := c.Providers
	if p.ElevenLabs.Key == "" {
		missing = append(missing, "elevenlabs")
	}
	if p.Sarvam.Key == "" {
		missing = append(missing, "sarvam")
	}
	if p.Google.CredentialsFile == "" {
		missing = append(missing, "google")
	}
	if p.Azure.Key == "" {
		missing = append(missing, "azure")
	}
	return missing
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Hindi TTS Configuration
# -----------------------
# API keys may be left empty here and supplied through the environment
# (or a .env file): ELEVENLABS_API_KEY, SARVAM_API_KEY,
# GOOGLE_APPLICATION_CREDENTIALS, AZURE_SPEECH_KEY, AZURE_SPEECH_REGION.

`)
	data = append(header, data...)

	reExporter := regexp.MustCompile(`(?m)^(\s+)exporter:`)
	data = reExporter.ReplaceAll(data, []byte("${1}# Options: none, stdout, otlp\n${1}exporter:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
