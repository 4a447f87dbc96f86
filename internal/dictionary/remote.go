package dictionary

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Remote queries an HTTP dictionary service shaped like dictionaryapi.dev:
// GET {base}/{language}/{word} answers 200 for known words and 404 otherwise.
type Remote struct {
	base   string
	client *http.Client
}

// NewRemote constructs a Remote with the given request timeout.
func NewRemote(base string, timeout time.Duration) *Remote {
	return &Remote{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// IsRecognizedWord performs one lookup; there are no retries.
func (r *Remote) IsRecognizedWord(word, language string) (bool, error) {
	endpoint := r.base + "/" + url.PathEscape(language) + "/" + url.PathEscape(strings.ToLower(word))
	resp, err := r.client.Get(endpoint)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s returned %d", ErrUnavailable, r.base, resp.StatusCode)
	}
}
