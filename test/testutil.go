//go:build e2e

package test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPJSONStep represents a single HTTP JSON request step in a test
type HTTPJSONStep struct {
	Name           string
	Method         string
	URL            string
	Body           any
	Headers        map[string]string
	ExpectedStatus int
	Validator      func(*testing.T, map[string]any) // Optional response validator
}

// ExecuteHTTPJSONStep executes a single HTTP JSON step and handles all the common boilerplate
func ExecuteHTTPJSONStep(t *testing.T, step HTTPJSONStep, baseURL string) map[string]any {
	t.Helper()
	t.Logf("step: %s", step.Name)

	url := baseURL + step.URL
	resp, err := httpJSON(step.Method, url, step.Body, step.Headers)
	require.NoError(t, err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf(msgFailedToCloseResponseBody, err)
		}
	}()

	assert.Equal(t, step.ExpectedStatus, resp.StatusCode)

	var respData map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&respData))

	if step.Validator != nil {
		step.Validator(t, respData)
	}

	return respData
}

// ExecuteHTTPJSONSteps executes a sequence of HTTP JSON steps
func ExecuteHTTPJSONSteps(t *testing.T, steps []HTTPJSONStep, baseURL string) []map[string]any {
	t.Helper()
	var results []map[string]any

	for _, step := range steps {
		result := ExecuteHTTPJSONStep(t, step, baseURL)
		results = append(results, result)
	}

	return results
}

// ErrorShapeValidator validates the uniform {name, message, status} error body
func ErrorShapeValidator(wantStatus int, wantMessage string) func(*testing.T, map[string]any) {
	return func(t *testing.T, respData map[string]any) {
		t.Helper()
		assert.Equal(t, float64(wantStatus), respData["status"])
		assert.Equal(t, wantMessage, respData["message"])
		assert.NotEmpty(t, respData["name"])
	}
}

// FieldValidator validates that a response carries the expected field value
func FieldValidator(field string, want any) func(*testing.T, map[string]any) {
	return func(t *testing.T, respData map[string]any) {
		t.Helper()
		assert.Equal(t, want, respData[field])
	}
}

// makeHTTPRequest performs a JSON request, asserts the status, and decodes an
// object body when one is present (204s and empty bodies return nil).
func makeHTTPRequest(t *testing.T, method, url string, payload any, headers map[string]string, expectedStatus int) map[string]any {
	t.Helper()

	resp, err := httpJSON(method, url, payload, headers)
	require.NoError(t, err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf(msgFailedToCloseResponseBody, err)
		}
	}()

	require.Equal(t, expectedStatus, resp.StatusCode)

	var respData map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return nil
	}
	return respData
}

// makeHTTPRequestList is makeHTTPRequest for endpoints that answer with a
// JSON array.
func makeHTTPRequestList(t *testing.T, method, url string, headers map[string]string, expectedStatus int) []map[string]any {
	t.Helper()

	resp, err := httpJSON(method, url, nil, headers)
	require.NoError(t, err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf(msgFailedToCloseResponseBody, err)
		}
	}()

	require.Equal(t, expectedStatus, resp.StatusCode)

	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	return items
}

// GetStringFromResponse safely extracts a string field from response data
func GetStringFromResponse(t *testing.T, respData map[string]any, fieldName string) string {
	t.Helper()
	value, exists := respData[fieldName]
	require.True(t, exists, "Expected %s field to exist in response", fieldName)
	str, ok := value.(string)
	require.True(t, ok, "Expected %s to be a string", fieldName)
	require.NotEmpty(t, str, "Expected %s to not be empty", fieldName)
	return str
}
