package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ResultResponse matches the API result envelope
type ResultResponse struct {
	Success      bool   `json:"success"`
	Error        string `json:"error"`
	UserID       string `json:"userId"`
	ExistingUser *bool  `json:"existingUser"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResult verifies a failed result envelope with the expected
// status and display message
func AssertErrorResult(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var result ResultResponse
	AssertJSONResponse(t, resp, &result)
	assert.False(t, result.Success, "expected success=false")
	assert.Equal(t, expectedMessage, result.Error, "error message mismatch")
}

// SessionCookie returns the session cookie from a response, or nil
func SessionCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
