package tts

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestReadAudio(t *testing.T) {
	tests := []struct {
		name       string
		resp       *http.Response
		want       string
		wantStatus int
		wantMsg    string
	}{
		{
			name: "OK",
			resp: response(200, "ID3audio"),
			want: "ID3audio",
		},
		{
			name: "EmptyBodyIsPassedThrough",
			resp: response(200, ""),
			want: "",
		},
		{
			name:       "Unauthorized",
			resp:       response(401, `{"detail":"invalid api key"}`),
			wantStatus: 401,
			wantMsg:    `vendor api error (status 401): {"detail":"invalid api key"}`,
		},
		{
			name:       "EmptyErrorBody",
			resp:       response(503, ""),
			wantStatus: 503,
			wantMsg:    "vendor api error (status 503): [empty body]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadAudio("vendor", tt.resp)
			if tt.wantMsg != "" {
				var pe *ProviderError
				if !errors.As(err, &pe) {
					t.Fatalf("expected ProviderError, got %v", err)
				}
				if pe.StatusCode != tt.wantStatus {
					t.Errorf("StatusCode = %d, want %d", pe.StatusCode, tt.wantStatus)
				}
				if pe.Error() != tt.wantMsg {
					t.Errorf("Error() = %q, want %q", pe.Error(), tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadAudio_BodyFailure(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Body: io.NopCloser(failingReader{})}
	_, err := ReadAudio("vendor", resp)
	if !IsProviderError(err) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("cause missing from %q", err.Error())
	}
}

func TestResponseError_Truncates(t *testing.T) {
	pe := ResponseError("vendor", response(500, strings.Repeat("x", maxErrorBody*2)))
	if len(pe.Message) > maxErrorBody+64 {
		t.Errorf("message not truncated: %d bytes", len(pe.Message))
	}
}
