package mock_response

import (
	"context"
	"log/slog"

	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
	mockResponseErrors "github.com/Motmedel/mock_http_go/pkg/http/mock_response/errors"
	"github.com/Motmedel/mock_http_go/pkg/http/mock_response/types/call_shape"
	motmedelLog "github.com/Motmedel/mock_http_go/pkg/log"
)

// WriteHead finalizes the status line and merges headers into the existing
// ones. args is an optional status message, optionally followed by headers,
// or headers alone.
//
// Calling WriteHead after End is an error. Calling it again before End is
// ignored.
func (response *Response) WriteHead(statusCode int, args ...any) (*Response, error) {
	if response.ended {
		return response, motmedelErrors.NewWithTrace(
			&mockResponseErrors.InvalidStateError{Operation: "write head"},
			statusCode,
		)
	}

	if response.HeadersSent {
		motmedelLog.LogDebug(
			context.Background(),
			response.logger,
			"The headers have already been sent. Ignoring write head.",
			slog.Int("status_code", statusCode),
		)
		return response, nil
	}

	call := call_shape.ResolveWriteHead(statusCode, args...)

	response.StatusCode = call.StatusCode
	if call.StatusMessage != nil {
		response.StatusMessage = *call.StatusMessage
	}
	for name, value := range call.Headers {
		response.headers[name] = coerceHeaderValue(value)
	}
	response.HeadersSent = true

	return response, nil
}

// Write appends data to the body and marks the headers as sent.
func (response *Response) Write(data any, encoding ...string) *Response {
	response.appendData(data)
	if len(encoding) > 0 && encoding[0] != "" {
		response.encoding = encoding[0]
	}
	response.HeadersSent = true

	return response
}

// End is the terminal call. It accepts optional data and an optional
// encoding, and emits "end". It is the only call that ends the response.
func (response *Response) End(args ...any) *Response {
	chunk := call_shape.ResolveChunk(args...)
	if chunk.HasData {
		response.appendData(chunk.Data)
	}
	if chunk.Encoding != "" {
		response.encoding = chunk.Encoding
	}

	response.HeadersSent = true
	response.ended = true
	response.notifier.Emit(EventEnd)

	return response
}

// Redirect accepts (url) for a 302 and (statusCode, url). Other shapes are
// ignored. "end" is emitted either way.
func (response *Response) Redirect(args ...any) *Response {
	if call := call_shape.ResolveRedirect(args...); call.Valid {
		response.StatusCode = call.StatusCode
		response.redirectUrl = call.Url
	}

	response.notifier.Emit(EventEnd)
	return response
}

// Render records the view and its data and emits "render" then "end".
func (response *Response) Render(view string, data any) *Response {
	response.renderView = view
	response.renderData = data

	response.notifier.Emit(EventRender, view, data)
	response.notifier.Emit(EventEnd)
	return response
}
