// Package mock_response simulates a server-side HTTP response in memory, so
// request-handling code can be tested without a socket or a framework.
//
// A Response exposes two overlapping surfaces over the same state: a
// low-level one (WriteHead, Write, End, SetHeader, ...) and a framework one
// (Status, SetHeaders, Send, Json, Redirect, Render, ...). The Get* and Is*
// methods read the state back.
//
// A Response models exactly one exchange and is not safe for concurrent use.
package mock_response

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Motmedel/mock_http_go/pkg/http/mock_response/types/cookie"
	"github.com/Motmedel/mock_http_go/pkg/http/mock_response/types/response_config"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/mime_resolver"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/notifier"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/sink"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/status_phraser"
	"github.com/google/uuid"
)

const (
	EventSend   = "send"
	EventEnd    = "end"
	EventRender = "render"
)

const (
	DefaultStatusCode    = http.StatusOK
	DefaultStatusMessage = "OK"
	Utf8Encoding         = "utf8"

	ContentTypeJson       = "application/json"
	ContentTypeJavascript = "text/javascript"
	ContentTypeText       = "text/plain"
)

var clearCookieExpires = time.UnixMilli(1).UTC()

type Response struct {
	StatusCode    int
	StatusMessage string
	Cookies       map[string]*cookie.Cookie
	HeadersSent   bool
	Locals        map[string]any

	headers  map[string]any
	data     any
	encoding string
	ended    bool

	redirectUrl string
	renderView  string
	renderData  any

	notifier      notifier.Notifier
	mimeResolver  mime_resolver.Resolver
	statusPhraser status_phraser.Phraser
	sink          sink.Sink
	logger        *slog.Logger
}

func New(options ...response_config.Option) *Response {
	config := response_config.New(options...)

	return &Response{
		StatusCode:    DefaultStatusCode,
		StatusMessage: DefaultStatusMessage,
		Cookies:       make(map[string]*cookie.Cookie),
		Locals:        config.Locals,
		headers:       make(map[string]any),
		notifier:      config.Notifier,
		mimeResolver:  config.MimeResolver,
		statusPhraser: config.StatusPhraser,
		sink:          config.Sink,
		logger:        config.Logger,
	}
}

func (response *Response) Status(statusCode int) *Response {
	response.StatusCode = statusCode
	return response
}

func (response *Response) SetEncoding(encoding string) *Response {
	response.encoding = encoding
	return response
}

func (response *Response) Cookie(name string, value string, options *cookie.Options) *Response {
	response.Cookies[name] = &cookie.Cookie{Value: value, Options: options}
	return response
}

// ClearCookie replaces the cookie with an empty one that has already expired.
func (response *Response) ClearCookie(name string, options *cookie.Options) *Response {
	clearOptions := &cookie.Options{}
	if options != nil {
		*clearOptions = *options
	}
	clearOptions.Expires = clearCookieExpires

	response.Cookies[name] = &cookie.Cookie{Options: clearOptions}
	return response
}

// Events

func (response *Response) Notifier() notifier.Notifier {
	return response.notifier
}

func (response *Response) On(event string, listener notifier.Listener) uuid.UUID {
	return response.notifier.On(event, listener)
}

func (response *Response) Once(event string, listener notifier.Listener) uuid.UUID {
	return response.notifier.Once(event, listener)
}

func (response *Response) Off(event string, id uuid.UUID) error {
	return response.notifier.Off(event, id)
}

func (response *Response) RemoveAllListeners(events ...string) {
	response.notifier.RemoveAllListeners(events...)
}

func (response *Response) Emit(event string, args ...any) bool {
	return response.notifier.Emit(event, args...)
}

// Sink

func (response *Response) Destroy() {
	response.sink.Destroy()
}

func (response *Response) DestroySoon() {
	response.sink.DestroySoon()
}
