package tts

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a vendor error body is carried into messages.
const maxErrorBody = 2048

// ResponseError builds a ProviderError from a non-2xx vendor response.
// The body is read (up to maxErrorBody) so the vendor's detail survives.
func ResponseError(provider string, resp *http.Response) *ProviderError {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	bodyStr := strings.TrimSpace(string(body))
	if err != nil {
		bodyStr = fmt.Sprintf("[failed to read body: %v]", err)
	}
	if bodyStr == "" {
		bodyStr = "[empty body]"
	}
	msg := fmt.Sprintf("%s api error (status %d): %s", provider, resp.StatusCode, bodyStr)
	return NewProviderError(provider, resp.StatusCode, msg)
}

// ReadAudio reads a successful vendor response body.
func ReadAudio(provider string, resp *http.Response) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ResponseError(provider, resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapProviderError(provider, "failed to read audio", err)
	}
	return data, nil
}
