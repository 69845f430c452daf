// internal/infrastructure/api/auth_extractor_test.go
package api

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scriptWithCredential(payload string) string {
	return `!function(e){var t={headers:{Authorization: "Basic ` + payload + `","Content-Type":"application/json"}};e.exports=t}();`
}

func TestExtractCredential(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("apiuser:s3cret"))

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		w.Write([]byte(scriptWithCredential(payload)))
	}))
	defer mockServer.Close()

	extractor := NewAuthExtractor(mockServer.URL, nil)

	cred, err := extractor.Extract(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "apiuser", cred.Username)
	assert.Equal(t, "s3cret", cred.Password)
}

func TestExtractPasswordContainingColon(t *testing.T) {
	// Only the first ':' separates username from password
	payload := base64.StdEncoding.EncodeToString([]byte("apiuser:pass:word"))

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scriptWithCredential(payload)))
	}))
	defer mockServer.Close()

	extractor := NewAuthExtractor(mockServer.URL, nil)

	cred, err := extractor.Extract(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "apiuser", cred.Username)
	assert.Equal(t, "pass:word", cred.Password)
}

func TestExtractFailsOnErrorStatus(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer mockServer.Close()

	extractor := NewAuthExtractor(mockServer.URL, nil)

	_, err := extractor.Extract(context.Background())
	assert.Error(t, err)

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
	assert.True(t, IsRetryable(err))
}

func TestExtractFailsWhenPatternAbsent(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`!function(e){e.exports={}}();`))
	}))
	defer mockServer.Close()

	extractor := NewAuthExtractor(mockServer.URL, nil)

	_, err := extractor.Extract(context.Background())
	assert.Error(t, err)

	// A missing literal means the site layout changed; never retryable
	var extractionErr *ExtractionError
	assert.True(t, errors.As(err, &extractionErr))
	assert.False(t, IsRetryable(err))
}

func TestExtractFailsOnInvalidBase64(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scriptWithCredential("%%%not-base64%%%")))
	}))
	defer mockServer.Close()

	extractor := NewAuthExtractor(mockServer.URL, nil)

	_, err := extractor.Extract(context.Background())
	assert.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.False(t, IsRetryable(err))
}

func TestExtractFailsOnMissingSeparator(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("no-separator-here"))

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scriptWithCredential(payload)))
	}))
	defer mockServer.Close()

	extractor := NewAuthExtractor(mockServer.URL, nil)

	_, err := extractor.Extract(context.Background())
	assert.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestCredentialPayloadRoundTrip(t *testing.T) {
	// For all valid user:pass payloads, decode-then-reencode round-trips
	payloads := []string{"a:b", "apiuser:s3cret", "user:", ":pass", "u:p:q"}
	for _, original := range payloads {
		encoded := base64.StdEncoding.EncodeToString([]byte(original))

		cred, err := decodeBasicAuth(encoded)
		assert.NoError(t, err)

		reencoded := base64.StdEncoding.EncodeToString([]byte(cred.Username + ":" + cred.Password))
		assert.Equal(t, encoded, reencoded)
	}
}
