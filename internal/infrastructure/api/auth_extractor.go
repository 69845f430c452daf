// internal/infrastructure/api/auth_extractor.go
package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
)

// basicAuthPattern matches the basic-auth header literal the vendor embeds
// as a string constant in its client script.
var basicAuthPattern = regexp.MustCompile(`Authorization:\s*"Basic\s*([^"]+)"`)

// AuthExtractor discovers the rotating API credential embedded in the
// vendor's client script
type AuthExtractor struct {
	scriptURL  string
	httpClient *http.Client
}

// NewAuthExtractor creates a new credential extractor for the given script URL
func NewAuthExtractor(scriptURL string, httpClient *http.Client) *AuthExtractor {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &AuthExtractor{
		scriptURL:  scriptURL,
		httpClient: httpClient,
	}
}

// Extract fetches the script asset and returns the credential embedded in
// it. The script only needs to be read as text, never executed.
func (e *AuthExtractor) Extract(ctx context.Context) (entity.Credential, error) {
	content, err := e.fetchScript(ctx)
	if err != nil {
		return entity.Credential{}, err
	}

	encoded, err := extractBasicAuth(content)
	if err != nil {
		return entity.Credential{}, err
	}

	return decodeBasicAuth(encoded)
}

// fetchScript retrieves the raw script text
func (e *AuthExtractor) fetchScript(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.scriptURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create script request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{URL: e.scriptURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: e.scriptURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: e.scriptURL, Err: err}
	}

	return string(body), nil
}

// extractBasicAuth locates the encoded basic-auth payload in the script text
func extractBasicAuth(content string) (string, error) {
	match := basicAuthPattern.FindStringSubmatch(content)
	if match == nil {
		return "", &ExtractionError{Pattern: basicAuthPattern.String()}
	}
	return match[1], nil
}

// decodeBasicAuth decodes the base64 payload and splits it into a credential
func decodeBasicAuth(encoded string) (entity.Credential, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return entity.Credential{}, &DecodeError{Reason: "invalid base64", Err: err}
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return entity.Credential{}, &DecodeError{Reason: "missing ':' separator"}
	}

	return entity.Credential{Username: username, Password: password}, nil
}
