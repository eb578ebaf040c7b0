package mock_response

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
	mockResponseErrors "github.com/Motmedel/mock_http_go/pkg/http/mock_response/errors"
	"github.com/Motmedel/mock_http_go/pkg/http/mock_response/types/cookie"
	"github.com/Motmedel/mock_http_go/pkg/http/mock_response/types/response_config"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/mime_resolver"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/status_phraser"
	"github.com/Motmedel/mock_http_go/pkg/io/null_sink"
	motmedelTestingCmp "github.com/Motmedel/mock_http_go/pkg/testing/cmp"
	"github.com/google/go-cmp/cmp"
)

func newResponse(options ...response_config.Option) *Response {
	options = append(
		[]response_config.Option{response_config.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))},
		options...,
	)
	return New(options...)
}

func recordEvents(response *Response, events ...string) *[]string {
	recorded := new([]string)
	for _, event := range events {
		response.On(event, func(args ...any) {
			*recorded = append(*recorded, event)
		})
	}
	return recorded
}

func TestNew(t *testing.T) {
	response := newResponse()

	if response.StatusCode != http.StatusOK {
		t.Errorf("got status code %d, expected %d", response.StatusCode, http.StatusOK)
	}
	if response.StatusMessage != "OK" {
		t.Errorf("got status message %q, expected %q", response.StatusMessage, "OK")
	}
	if response.HeadersSent {
		t.Error("expected headers not to be sent")
	}
	if response.IsEndCalled() {
		t.Error("expected end not to be called")
	}
	if body := response.GetBody(); body != "" {
		t.Errorf("got body %q, expected empty body", body)
	}
	if len(response.GetHeaders()) != 0 {
		t.Errorf("expected no headers, got %v", response.GetHeaders())
	}
	if response.GetEncoding() != "" || response.IsUtf8() {
		t.Error("expected no encoding")
	}
}

func TestStatus(t *testing.T) {
	response := newResponse()
	if response.Status(http.StatusTeapot) != response {
		t.Fatal("expected status to return the response")
	}
	if response.GetStatusCode() != http.StatusTeapot {
		t.Errorf("got status code %d, expected %d", response.GetStatusCode(), http.StatusTeapot)
	}
}

func TestGetHeader(t *testing.T) {
	testCases := []struct {
		name     string
		setName  string
		getName  string
		setValue any
		expected any
	}{
		{name: "exact", setName: "Content-Type", getName: "Content-Type", setValue: "text/html", expected: "text/html"},
		{name: "lower-case storage, mixed-case lookup", setName: "x-custom", getName: "X-Custom", setValue: "a", expected: "a"},
		{name: "lower-case storage, upper-case lookup", setName: "x-custom", getName: "X-CUSTOM", setValue: "a", expected: "a"},
		{name: "upper-case storage, lower-case lookup", setName: "X-CUSTOM", getName: "x-custom", setValue: "a", expected: "a"},
		{name: "upper-case storage, mixed-case lookup", setName: "ETAG", getName: "ETag", setValue: "1", expected: "1"},
		{name: "mixed-case storage, lower-case lookup", setName: "Content-Type", getName: "content-type", setValue: "text/html", expected: "text/html"},
		{name: "mixed-case storage, upper-case lookup", setName: "Content-Type", getName: "CONTENT-TYPE", setValue: "text/html", expected: "text/html"},
		{name: "mixed-case storage, other mixed-case lookup", setName: "X-Request-Id", getName: "X-Request-ID", setValue: "7", expected: "7"},
		{name: "absent", setName: "A", getName: "B", setValue: "a", expected: nil},
		{name: "number is coerced", setName: "content-length", getName: "Content-Length", setValue: 5, expected: "5"},
		{name: "sequence is coerced element-wise", setName: "set-cookie", getName: "Set-Cookie", setValue: []any{"a=1", 2}, expected: []string{"a=1", "2"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			response := newResponse()
			response.SetHeader(testCase.setName, testCase.setValue)

			if diff := cmp.Diff(testCase.expected, response.GetHeader(testCase.getName)); diff != "" {
				t.Errorf("header mismatch (-expected +got):\n%s", diff)
			}
			if hasHeader := response.HasHeader(testCase.getName); hasHeader != (testCase.expected != nil) {
				t.Errorf("got has header %t, expected %t", hasHeader, testCase.expected != nil)
			}
		})
	}
}

func TestSetHeaderReturnsStoredValue(t *testing.T) {
	response := newResponse()
	if diff := cmp.Diff(any("12"), response.SetHeader("Content-Length", 12)); diff != "" {
		t.Errorf("stored value mismatch (-expected +got):\n%s", diff)
	}
}

func TestRemoveHeader(t *testing.T) {
	response := newResponse()
	response.SetHeader("x-a", "1")

	response.RemoveHeader("X-A")
	if response.GetHeader("x-a") == nil {
		t.Fatal("expected removal to match the exact name only")
	}

	response.RemoveHeader("x-a")
	if response.GetHeader("x-a") != nil {
		t.Fatal("expected header to be removed")
	}
}

func TestSetHeaders(t *testing.T) {
	response := newResponse()

	response.
		SetHeaders("X-One", 1).
		SetHeaders(map[string]any{"X-Two": "2", "X-Three": []string{"a", "b"}}).
		SetHeaders(http.Header{"X-Four": {"4"}}).
		SetHeaders("X-Ignored")

	expected := map[string]any{
		"X-One":   "1",
		"X-Two":   "2",
		"X-Three": []string{"a", "b"},
		"X-Four":  []string{"4"},
	}
	if diff := cmp.Diff(expected, response.GetHeaders()); diff != "" {
		t.Errorf("headers mismatch (-expected +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"X-Four", "X-One", "X-Three", "X-Two"}, response.GetHeaderNames()); diff != "" {
		t.Errorf("header names mismatch (-expected +got):\n%s", diff)
	}
}

func TestSetContentType(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "application/vnd.api+json", expected: "application/vnd.api+json"},
		{input: "json", expected: "application/json"},
		{input: "html", expected: "text/html"},
		{input: ".txt", expected: "text/plain"},
		{input: "report.pdf", expected: "application/pdf"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			response := newResponse()
			response.SetContentType(testCase.input)
			if got := response.GetHeader("Content-Type"); got != testCase.expected {
				t.Errorf("got content type %v, expected %q", got, testCase.expected)
			}
		})
	}
}

func TestCustomCollaborators(t *testing.T) {
	response := newResponse(
		response_config.WithMimeResolver(mime_resolver.Function(func(token string) string {
			return "application/x-" + token
		})),
		response_config.WithStatusPhraser(status_phraser.Function(func(code int) (string, bool) {
			return "", false
		})),
	)

	response.SetContentType("custom")
	if got := response.GetHeader("Content-Type"); got != "application/x-custom" {
		t.Errorf("got content type %v, expected %q", got, "application/x-custom")
	}

	response.SendStatus(http.StatusNotFound)
	if got := response.GetBody(); got != "404" {
		t.Errorf("got body %q, expected %q", got, "404")
	}
}

func TestVary(t *testing.T) {
	testCases := []struct {
		name     string
		calls    [][]string
		expected string
	}{
		{name: "single field", calls: [][]string{{"Accept"}}, expected: "Accept"},
		{name: "sequence of fields", calls: [][]string{{"Accept", "Origin"}}, expected: "Accept, Origin"},
		{name: "appends to existing", calls: [][]string{{"Accept"}, {"Origin"}}, expected: "Accept, Origin"},
		{name: "case-insensitive duplicate", calls: [][]string{{"Accept"}, {"accept"}}, expected: "Accept"},
		{name: "field matching part of a token", calls: [][]string{{"Accept-Encoding"}, {"Accept"}}, expected: "Accept-Encoding"},
		{name: "token matching part of a field", calls: [][]string{{"Accept"}, {"Accept-Encoding"}}, expected: "Accept"},
		{name: "token matching a longer lower-case field", calls: [][]string{{"A"}, {"a-test"}}, expected: "A"},
		{name: "duplicate within one call", calls: [][]string{{"Origin", "origin"}}, expected: "Origin"},
		{name: "field used as a pattern", calls: [][]string{{"Accept-Language"}, {"accept-.*"}}, expected: "Accept-Language"},
		{name: "invalid pattern matched literally", calls: [][]string{{"A("}, {"a("}}, expected: "A("},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			response := newResponse()
			for _, fields := range testCase.calls {
				response.Vary(fields...)
			}
			if got := response.GetHeader("Vary"); got != testCase.expected {
				t.Errorf("got vary %v, expected %q", got, testCase.expected)
			}
		})
	}
}

func TestVaryWithoutFields(t *testing.T) {
	response := newResponse()

	response.Vary()
	response.Vary("")
	if response.HasHeader("Vary") {
		t.Fatalf("expected no vary header, got %v", response.GetHeader("Vary"))
	}

	response.SetHeader("Vary", []string{"Accept", "Origin"})
	response.Vary("accept")
	if diff := cmp.Diff([]string{"Accept", "Origin"}, response.GetHeader("Vary")); diff != "" {
		t.Errorf("header mismatch (-expected +got):\n%s", diff)
	}
}

func TestAppend(t *testing.T) {
	response := newResponse()

	response.Append("Link", "<a>").Append("Link", []string{"<b>", "<c>"})
	if diff := cmp.Diff([]string{"<a>", "<b>", "<c>"}, response.GetHeader("Link")); diff != "" {
		t.Errorf("header mismatch (-expected +got):\n%s", diff)
	}

	response.Append("X-Single", "1")
	if got := response.GetHeader("X-Single"); got != "1" {
		t.Errorf("got %v, expected %q", got, "1")
	}
}

func TestLocationAndAttachment(t *testing.T) {
	response := newResponse()
	response.Location("/next").Attachment("path/to/report.pdf")

	expected := map[string]any{
		"Location":            "/next",
		"Content-Type":        "application/pdf",
		"Content-Disposition": `attachment; filename=report.pdf`,
	}
	if diff := cmp.Diff(expected, response.GetHeaders()); diff != "" {
		t.Errorf("headers mismatch (-expected +got):\n%s", diff)
	}

	bare := newResponse().Attachment()
	if got := bare.GetHeader("Content-Disposition"); got != "attachment" {
		t.Errorf("got %v, expected %q", got, "attachment")
	}
}

func TestWriteHead(t *testing.T) {
	testCases := []struct {
		name            string
		args            []any
		expectedMessage string
		expectedHeaders map[string]any
	}{
		{
			name:            "status code only",
			expectedMessage: "OK",
			expectedHeaders: map[string]any{"X-Early": "1"},
		},
		{
			name:            "status message",
			args:            []any{"Created Here"},
			expectedMessage: "Created Here",
			expectedHeaders: map[string]any{"X-Early": "1"},
		},
		{
			name:            "headers as second argument",
			args:            []any{map[string]string{"X-Late": "2"}},
			expectedMessage: "OK",
			expectedHeaders: map[string]any{"X-Early": "1", "X-Late": "2"},
		},
		{
			name:            "status message and headers",
			args:            []any{"Created", map[string]any{"X-Early": "overwritten", "X-Late": 2}},
			expectedMessage: "Created",
			expectedHeaders: map[string]any{"X-Early": "overwritten", "X-Late": "2"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			response := newResponse()
			response.SetHeader("X-Early", "1")

			if _, err := response.WriteHead(http.StatusCreated, testCase.args...); err != nil {
				t.Fatalf("write head: %v", err)
			}

			if response.StatusCode != http.StatusCreated {
				t.Errorf("got status code %d, expected %d", response.StatusCode, http.StatusCreated)
			}
			if response.StatusMessage != testCase.expectedMessage {
				t.Errorf("got status message %q, expected %q", response.StatusMessage, testCase.expectedMessage)
			}
			if diff := cmp.Diff(testCase.expectedHeaders, response.GetHeaders()); diff != "" {
				t.Errorf("headers mismatch (-expected +got):\n%s", diff)
			}
			if !response.HeadersSent {
				t.Error("expected headers to be sent")
			}
		})
	}
}

func TestWriteHeadTwice(t *testing.T) {
	response := newResponse()

	if _, err := response.WriteHead(http.StatusAccepted, "Accepted", map[string]any{"X-A": "1"}); err != nil {
		t.Fatalf("write head: %v", err)
	}
	if _, err := response.WriteHead(http.StatusNotFound, "Not Found", map[string]any{"X-B": "2"}); err != nil {
		t.Fatalf("second write head: %v", err)
	}

	if response.StatusCode != http.StatusAccepted || response.StatusMessage != "Accepted" {
		t.Errorf("got %d %q, expected the first status line to persist", response.StatusCode, response.StatusMessage)
	}
	if diff := cmp.Diff(map[string]any{"X-A": "1"}, response.GetHeaders()); diff != "" {
		t.Errorf("headers mismatch (-expected +got):\n%s", diff)
	}
}

func TestWriteHeadAfterEnd(t *testing.T) {
	response := newResponse()
	response.End("done")

	_, err := response.WriteHead(http.StatusInternalServerError)
	motmedelTestingCmp.CompareErrIs(t, err, mockResponseErrors.ErrInvalidState)
	motmedelTestingCmp.CompareErr(t, err, &mockResponseErrors.InvalidStateError{Operation: "write head"})

	if response.StatusCode != http.StatusOK {
		t.Errorf("got status code %d, expected the state to be untouched", response.StatusCode)
	}
	if response.GetBody() != "done" {
		t.Errorf("got body %q, expected %q", response.GetBody(), "done")
	}
}

func TestWriteAndEnd(t *testing.T) {
	response := newResponse()
	events := recordEvents(response, EventSend, EventEnd)

	response.Write("a")
	if !response.HeadersSent {
		t.Error("expected write to mark the headers as sent")
	}
	if len(*events) != 0 {
		t.Errorf("expected write to emit nothing, got %v", *events)
	}

	response.Write([]byte("b"), "utf8")
	response.End("c")

	if response.GetBody() != "abc" {
		t.Errorf("got body %q, expected %q", response.GetBody(), "abc")
	}
	if !response.IsUtf8() {
		t.Error("expected utf8 encoding")
	}
	if !response.IsEndCalled() {
		t.Error("expected end to be called")
	}
	if diff := cmp.Diff([]string{EventEnd}, *events); diff != "" {
		t.Errorf("events mismatch (-expected +got):\n%s", diff)
	}

	response.End("d", "latin1")
	if !response.IsEndCalled() {
		t.Error("expected the response to stay ended")
	}
	if response.GetBody() != "abcd" || response.GetEncoding() != "latin1" {
		t.Errorf("got body %q and encoding %q", response.GetBody(), response.GetEncoding())
	}
}

func TestEndWithoutData(t *testing.T) {
	response := newResponse()
	response.End()

	if !response.IsEndCalled() || !response.HeadersSent {
		t.Error("expected the response to be ended with headers sent")
	}
	if response.GetBody() != "" {
		t.Errorf("got body %q, expected empty", response.GetBody())
	}
}

func TestRedirect(t *testing.T) {
	testCases := []struct {
		name               string
		args               []any
		expectedStatusCode int
		expectedUrl        string
	}{
		{name: "url only", args: []any{"/y"}, expectedStatusCode: http.StatusFound, expectedUrl: "/y"},
		{name: "status code and url", args: []any{301, "/x"}, expectedStatusCode: http.StatusMovedPermanently, expectedUrl: "/x"},
		{name: "two strings are ignored", args: []any{"/a", "/b"}, expectedStatusCode: http.StatusOK},
		{name: "no arguments are ignored", expectedStatusCode: http.StatusOK},
		{name: "three arguments are ignored", args: []any{301, "/x", "extra"}, expectedStatusCode: http.StatusOK},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			response := newResponse()
			events := recordEvents(response, EventEnd)

			response.Redirect(testCase.args...)

			if response.StatusCode != testCase.expectedStatusCode {
				t.Errorf("got status code %d, expected %d", response.StatusCode, testCase.expectedStatusCode)
			}
			if response.GetRedirectUrl() != testCase.expectedUrl {
				t.Errorf("got redirect url %q, expected %q", response.GetRedirectUrl(), testCase.expectedUrl)
			}
			if diff := cmp.Diff([]string{EventEnd}, *events); diff != "" {
				t.Errorf("events mismatch (-expected +got):\n%s", diff)
			}
			if response.IsEndCalled() {
				t.Error("expected redirect not to end the response")
			}
		})
	}
}

func TestRender(t *testing.T) {
	response := newResponse()

	var renderArgs []any
	response.On(EventRender, func(args ...any) {
		renderArgs = args
	})
	events := recordEvents(response, EventRender, EventEnd)

	data := map[string]any{"title": "Home"}
	response.Render("index", data)

	if response.GetRenderView() != "index" {
		t.Errorf("got render view %q, expected %q", response.GetRenderView(), "index")
	}
	if diff := cmp.Diff(data, response.GetRenderData()); diff != "" {
		t.Errorf("render data mismatch (-expected +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"index", data}, renderArgs); diff != "" {
		t.Errorf("render args mismatch (-expected +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{EventRender, EventEnd}, *events); diff != "" {
		t.Errorf("events mismatch (-expected +got):\n%s", diff)
	}
	if response.IsEndCalled() {
		t.Error("expected render not to end the response")
	}
	if response.GetBody() != "" {
		t.Errorf("expected render to leave the body alone, got %q", response.GetBody())
	}
}

func TestIsDataLengthValid(t *testing.T) {
	testCases := []struct {
		name          string
		contentLength any
		body          string
		expected      bool
	}{
		{name: "absent header", contentLength: nil, body: "anything", expected: true},
		{name: "matching string", contentLength: "3", body: "abc", expected: true},
		{name: "matching number", contentLength: 3, body: "abc", expected: true},
		{name: "byte length of multi-byte text", contentLength: "2", body: "é", expected: true},
		{name: "mismatch", contentLength: "4", body: "abc", expected: false},
		{name: "not a number", contentLength: "three", body: "abc", expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			response := newResponse()
			if testCase.contentLength != nil {
				response.SetHeader("content-length", testCase.contentLength)
			}
			response.Write(testCase.body)

			if got := response.IsDataLengthValid(); got != testCase.expected {
				t.Errorf("got %t, expected %t", got, testCase.expected)
			}
		})
	}
}

func TestIsJson(t *testing.T) {
	response := newResponse()
	if response.IsJson() {
		t.Fatal("expected no json without a content type")
	}

	response.SetContentType("json")
	if !response.IsJson() {
		t.Fatal("expected json")
	}

	response.SetHeader("Content-Type", "application/json; charset=utf-8")
	if response.IsJson() {
		t.Fatal("expected an exact comparison")
	}

	response = newResponse()
	response.SetHeader("content-Type", ContentTypeJson)
	if !response.IsJson() {
		t.Fatal("expected json under a differently cased name")
	}
}

func TestCookies(t *testing.T) {
	response := newResponse()

	options := &cookie.Options{Path: "/", HttpOnly: true}
	response.Cookie("session", "abc", options).Cookie("theme", "dark", nil)

	expected := map[string]*cookie.Cookie{
		"session": {Value: "abc", Options: options},
		"theme":   {Value: "dark"},
	}
	if diff := cmp.Diff(expected, response.Cookies); diff != "" {
		t.Errorf("cookies mismatch (-expected +got):\n%s", diff)
	}

	response.ClearCookie("session", options)

	cleared := response.Cookies["session"]
	if cleared == nil || cleared.Value != "" {
		t.Fatalf("expected an empty session cookie, got %v", cleared)
	}
	if cleared.Options.Path != "/" || !cleared.Options.Expires.Equal(clearCookieExpires) {
		t.Errorf("got options %+v", cleared.Options)
	}
	if !options.Expires.IsZero() {
		t.Error("expected the caller's options to be left alone")
	}
	if len(response.GetHeaders()) != 0 {
		t.Error("expected cookies to be independent of the headers")
	}
}

func TestDestroy(t *testing.T) {
	sink := &null_sink.Sink{}
	response := newResponse(response_config.WithSink(sink))

	response.Destroy()
	response.DestroySoon()
	response.DestroySoon()

	if sink.DestroyCalls != 1 || sink.DestroySoonCalls != 2 {
		t.Errorf("got %d destroy and %d destroy soon calls", sink.DestroyCalls, sink.DestroySoonCalls)
	}
}

func TestLocals(t *testing.T) {
	locals := map[string]any{"user": "alice"}
	response := newResponse(response_config.WithLocals(locals))

	if diff := cmp.Diff(locals, response.Locals); diff != "" {
		t.Errorf("locals mismatch (-expected +got):\n%s", diff)
	}
	if newResponse().Locals == nil {
		t.Error("expected default locals")
	}
}

func TestGetLocal(t *testing.T) {
	response := newResponse(response_config.WithLocals(map[string]any{"user": "alice", "count": 3}))

	user, err := GetLocal[string](response, "user")
	motmedelTestingCmp.CompareErr(t, err, nil)
	if user != "alice" {
		t.Errorf("got user %q, expected %q", user, "alice")
	}

	_, err = GetLocal[string](response, "count")
	motmedelTestingCmp.CompareErrIs(t, err, motmedelErrors.ErrConversionNotOk)

	_, err = GetLocal[int](response, "missing")
	motmedelTestingCmp.CompareErrIs(t, err, motmedelErrors.ErrNotInMap)

	response.Locals = nil
	_, err = GetLocal[int](response, "count")
	motmedelTestingCmp.CompareErrIs(t, err, motmedelErrors.ErrNilMap)

	_, err = GetLocal[int](nil, "count")
	motmedelTestingCmp.CompareErrIs(t, err, mockResponseErrors.ErrNilResponse)
}

func TestIsHeadersSent(t *testing.T) {
	response := newResponse()
	if response.IsHeadersSent() {
		t.Fatal("expected the headers not to be sent")
	}

	response.Status(204).SetHeader("X-Before", "1")
	if response.IsHeadersSent() {
		t.Fatal("expected status and header changes not to send the headers")
	}

	response.Write("")
	if !response.IsHeadersSent() {
		t.Error("expected write to send the headers")
	}
}

func TestEventPassThrough(t *testing.T) {
	response := newResponse()

	var calls int
	id := response.On("custom", func(args ...any) { calls++ })
	response.Once("custom", func(args ...any) { calls += 10 })

	if !response.Emit("custom") || !response.Emit("custom") {
		t.Fatal("expected listeners")
	}
	if calls != 12 {
		t.Errorf("got %d calls, expected 12", calls)
	}

	if err := response.Off("custom", id); err != nil {
		t.Fatalf("off: %v", err)
	}
	if err := response.Off("custom", id); err == nil {
		t.Fatal("expected an error removing an unknown subscription")
	}
	if response.Emit("custom") {
		t.Fatal("expected no listeners")
	}

	response.On(EventEnd, func(args ...any) {})
	response.RemoveAllListeners()
	if response.Notifier().ListenerCount(EventEnd) != 0 {
		t.Fatal("expected all listeners to be removed")
	}
}
