package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"librarydesk/internal/entity"
)

// TestBook is a sample catalog record for testing.
var TestBook = entity.Book{
	ID:          1,
	Title:       "The Go Programming Language",
	Author:      "Donovan and Kernighan",
	Category:    "Programming",
	Description: "A reference book",
	TotalCopies: 2,
}

// TestStudent is a sample roster record for testing.
var TestStudent = entity.Student{
	ID:          "S1",
	Name:        "Test Student",
	PhoneNumber: "555-0100",
	Email:       "student@example.com",
}

// FixedClock returns a clock stuck at midnight of the given ISO date.
func FixedClock(date string) func() time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

// NewRequest creates a new HTTP request for testing, with an optional
// JSON body.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse is a decoded HTTP response for assertions.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
