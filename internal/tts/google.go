// Package tts resolves spoken text into playable audio URLs.
package tts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultEndpoint = "https://translate.google.com/translate_tts"
	defaultLanguage = "en"
	defaultSpeed    = 1.0

	// The translate endpoint rejects longer inputs.
	maxTextLength = 200
)

var errEmptyText = errors.New("tts: text is empty")

// Google resolves speech URLs against the Google Translate TTS endpoint.
type Google struct {
	endpoint string
	client   *retryablehttp.Client
}

type Option func(*Google)

// WithEndpoint overrides the TTS endpoint, primarily for tests.
func WithEndpoint(endpoint string) Option {
	return func(g *Google) { g.endpoint = endpoint }
}

func NewGoogle(opts ...Option) *Google {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil

	g := &Google{
		endpoint: defaultEndpoint,
		client:   client,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SpeechURL builds the playable URL for the given text and verifies the
// endpoint will serve it. Language defaults to "en", speed to 1.
func (g *Google) SpeechURL(ctx context.Context, text, language string, speed float64) (string, error) {
	if text == "" {
		return "", errEmptyText
	}
	if length := utf8.RuneCountInString(text); length > maxTextLength {
		return "", fmt.Errorf("tts: text is %d characters, limit is %d", length, maxTextLength)
	}
	if language == "" {
		language = defaultLanguage
	}
	if speed <= 0 {
		speed = defaultSpeed
	}

	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("q", text)
	query.Set("tl", language)
	query.Set("ttsspeed", strconv.FormatFloat(speed, 'f', -1, 64))
	query.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))
	speechURL := g.endpoint + "?" + query.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodHead, speechURL, nil)
	if err != nil {
		return "", fmt.Errorf("tts: build request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts: resolve speech url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("tts: endpoint returned %s", resp.Status)
	}
	return speechURL, nil
}
