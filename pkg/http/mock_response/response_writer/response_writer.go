// Package response_writer lets net/http handlers write to a mock response
// through the low-level surface.
package response_writer

import (
	"fmt"
	"net/http"

	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
	"github.com/Motmedel/mock_http_go/pkg/http/mock_response"
	mockResponseErrors "github.com/Motmedel/mock_http_go/pkg/http/mock_response/errors"
)

type ResponseWriter struct {
	Response          *mock_response.Response
	IsHeadRequest     bool
	WriteHeaderCalled bool
	WriteCalled       bool

	// Err is the first error produced by WriteHeader, which cannot return it.
	Err error

	header http.Header
}

func (responseWriter *ResponseWriter) Header() http.Header {
	if responseWriter.header == nil {
		responseWriter.header = make(http.Header)
	}
	return responseWriter.header
}

func (responseWriter *ResponseWriter) headers() map[string]any {
	headers := make(map[string]any, len(responseWriter.header))
	for name, values := range responseWriter.header {
		switch len(values) {
		case 0:
		case 1:
			headers[name] = values[0]
		default:
			headers[name] = values
		}
	}
	return headers
}

// WriteHeader finalizes the status code and the headers set so far. Calls
// after the first are ignored.
func (responseWriter *ResponseWriter) WriteHeader(statusCode int) {
	if responseWriter.WriteHeaderCalled {
		return
	}
	responseWriter.WriteHeaderCalled = true

	response := responseWriter.Response
	if response == nil {
		responseWriter.setErr(motmedelErrors.NewWithTrace(mockResponseErrors.ErrNilResponse))
		return
	}

	if _, err := response.WriteHead(statusCode, http.StatusText(statusCode), responseWriter.headers()); err != nil {
		responseWriter.setErr(fmt.Errorf("mock response write head: %w", err))
	}
}

func (responseWriter *ResponseWriter) setErr(err error) {
	if responseWriter.Err == nil {
		responseWriter.Err = err
	}
}

func (responseWriter *ResponseWriter) Write(data []byte) (int, error) {
	responseWriter.WriteCalled = true

	if !responseWriter.WriteHeaderCalled {
		statusCode := http.StatusOK
		if len(data) == 0 {
			statusCode = http.StatusNoContent
		}
		responseWriter.WriteHeader(statusCode)
	}

	if err := responseWriter.Err; err != nil {
		return 0, err
	}

	if responseWriter.IsHeadRequest || len(data) == 0 {
		return 0, nil
	}

	if responseWriter.Response.IsEndCalled() {
		return 0, motmedelErrors.NewWithTrace(
			&mockResponseErrors.InvalidStateError{Operation: "write"},
			data,
		)
	}

	responseWriter.Response.Write(data)
	return len(data), nil
}

func (responseWriter *ResponseWriter) Flush() {
	if !responseWriter.WriteHeaderCalled {
		responseWriter.WriteHeader(http.StatusOK)
	}
}

// Finish ends the mock response, finalizing the headers first if the handler
// never wrote anything.
func (responseWriter *ResponseWriter) Finish() error {
	if !responseWriter.WriteHeaderCalled {
		responseWriter.WriteHeader(http.StatusOK)
	}

	if err := responseWriter.Err; err != nil {
		return err
	}

	responseWriter.Response.End()
	return nil
}

func New(response *mock_response.Response) *ResponseWriter {
	return &ResponseWriter{Response: response}
}

var (
	_ http.ResponseWriter = (*ResponseWriter)(nil)
	_ http.Flusher        = (*ResponseWriter)(nil)
)
