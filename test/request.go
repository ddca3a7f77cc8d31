package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"reflect"
	"testing"

	v1 "github.com/carryforward/backend/pkg/controllers/v1"
	"github.com/carryforward/backend/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Router returns a router with all routes attached. Its metrics are
// unregistered when the test ends.
func Router(t *testing.T, db *gorm.DB, co v1.Controller, events http.Handler) http.Handler {
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://example.com/api"
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		assert.FailNow(t, "environment variable API_URL must be a valid URL")
	}

	r, teardown, err := router.Config(baseURL, nil)
	require.Nil(t, err, "Router could not be initialized")
	t.Cleanup(teardown)

	router.AttachRoutes(r.Group("/"), db, co, events, false)
	return r
}

// Request is a helper method to simplify making a HTTP request for tests.
func Request(t *testing.T, h http.Handler, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer

	// If the body is a string, convert it to bytes
	switch reflect.TypeOf(body).Kind() {
	case reflect.String:
		byteBuffer = bytes.NewBufferString(body.(string))
	case reflect.Struct, reflect.Map, reflect.Slice:
		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.FailNow(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	default:
		byteBuffer = body.(*bytes.Buffer)
	}

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, reqURL, byteBuffer)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	h.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}
