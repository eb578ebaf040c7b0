// Package call_shape resolves the overloaded argument lists accepted by the
// framework surface of a mock response into explicit call shapes.
//
// Every resolver runs once, up front, and the response only switches on the
// resulting Kind.
package call_shape

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// IsNumber reports whether value is of a numeric kind. Numeric strings are
// not numbers.
func IsNumber(value any) bool {
	if value == nil {
		return false
	}

	switch reflect.TypeOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// StatusCode converts a number, or a string holding a base-10 integer, into
// a status code.
func StatusCode(value any) (int, bool) {
	if IsNumber(value) {
		statusCode, err := cast.ToIntE(value)
		return statusCode, err == nil
	}

	if s, ok := value.(string); ok {
		statusCode, err := strconv.Atoi(strings.TrimSpace(s))
		return statusCode, err == nil
	}

	return 0, false
}

// HeaderMap converts the key-value structures accepted as header arguments
// into a header map. The values are not coerced.
func HeaderMap(value any) (map[string]any, bool) {
	switch typedValue := value.(type) {
	case map[string]any:
		return typedValue, true
	case map[string]string:
		headers := make(map[string]any, len(typedValue))
		for name, headerValue := range typedValue {
			headers[name] = headerValue
		}
		return headers, true
	case map[string][]string:
		headers := make(map[string]any, len(typedValue))
		for name, headerValues := range typedValue {
			headers[name] = headerValues
		}
		return headers, true
	case http.Header:
		return HeaderMap(map[string][]string(typedValue))
	}

	reflectValue := reflect.ValueOf(value)
	if reflectValue.Kind() != reflect.Map || reflectValue.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	headers := make(map[string]any, reflectValue.Len())
	iterator := reflectValue.MapRange()
	for iterator.Next() {
		headers[iterator.Key().String()] = iterator.Value().Interface()
	}
	return headers, true
}

type SendKind int

const (
	// SendNone is any arity that send ignores.
	SendNone SendKind = iota
	SendStatus
	SendBody
	SendStatusBody
	SendBodyStatus
	SendBodyEncoding
	SendBodyHeadersStatus
)

var sendKindNames = map[SendKind]string{
	SendNone:              "none",
	SendStatus:            "status code",
	SendBody:              "body",
	SendStatusBody:        "status code, body",
	SendBodyStatus:        "body, status code",
	SendBodyEncoding:      "body, encoding",
	SendBodyHeadersStatus: "body, headers, status code",
}

func (kind SendKind) String() string {
	if name, ok := sendKindNames[kind]; ok {
		return name
	}
	return "unknown"
}

type Send struct {
	Kind          SendKind
	Body          any
	StatusCode    int
	HasStatusCode bool
	Encoding      string
	Headers       map[string]any
}

func (send *Send) Deprecated() bool {
	return send.Kind == SendBodyStatus || send.Kind == SendBodyHeadersStatus
}

func ResolveSend(args ...any) *Send {
	switch len(args) {
	case 1:
		if statusCode, ok := numericStatusCode(args[0]); ok {
			return &Send{Kind: SendStatus, StatusCode: statusCode, HasStatusCode: true}
		}
		return &Send{Kind: SendBody, Body: args[0]}
	case 2:
		if statusCode, ok := numericStatusCode(args[0]); ok {
			return &Send{Kind: SendStatusBody, Body: args[1], StatusCode: statusCode, HasStatusCode: true}
		}
		if statusCode, ok := numericStatusCode(args[1]); ok {
			return &Send{Kind: SendBodyStatus, Body: args[0], StatusCode: statusCode, HasStatusCode: true}
		}
		return &Send{Kind: SendBodyEncoding, Body: args[0], Encoding: cast.ToString(args[1])}
	case 3:
		headers, _ := HeaderMap(args[1])
		if headers == nil {
			headers = make(map[string]any)
		}
		statusCode, ok := StatusCode(args[2])
		return &Send{
			Kind:          SendBodyHeadersStatus,
			Body:          args[0],
			Headers:       headers,
			StatusCode:    statusCode,
			HasStatusCode: ok,
		}
	default:
		return &Send{Kind: SendNone}
	}
}

func numericStatusCode(value any) (int, bool) {
	if !IsNumber(value) {
		return 0, false
	}
	return StatusCode(value)
}

// JsonArgument is one positional argument of json or jsonp: either a status
// code or a payload to serialize.
type JsonArgument struct {
	IsStatusCode bool
	StatusCode   int
	Payload      any
}

type Json struct {
	Arguments []*JsonArgument
}

// ResolveJson classifies up to two positional arguments independently.
// Further arguments are ignored.
func ResolveJson(args ...any) *Json {
	if len(args) > 2 {
		args = args[:2]
	}

	call := &Json{}
	for _, arg := range args {
		if statusCode, ok := numericStatusCode(arg); ok {
			call.Arguments = append(call.Arguments, &JsonArgument{IsStatusCode: true, StatusCode: statusCode})
		} else {
			call.Arguments = append(call.Arguments, &JsonArgument{Payload: arg})
		}
	}

	return call
}

type Redirect struct {
	Valid      bool
	StatusCode int
	Url        string
}

// ResolveRedirect accepts (url) and (statusCode, url). Any other shape is
// invalid and leaves the response unchanged.
func ResolveRedirect(args ...any) *Redirect {
	switch len(args) {
	case 1:
		return &Redirect{Valid: true, StatusCode: http.StatusFound, Url: cast.ToString(args[0])}
	case 2:
		if statusCode, ok := numericStatusCode(args[0]); ok {
			return &Redirect{Valid: true, StatusCode: statusCode, Url: cast.ToString(args[1])}
		}
	}

	return &Redirect{}
}

type WriteHead struct {
	StatusCode    int
	StatusMessage *string
	Headers       map[string]any
}

// ResolveWriteHead accepts (statusCode), (statusCode, statusMessage),
// (statusCode, headers) and (statusCode, statusMessage, headers).
func ResolveWriteHead(statusCode int, args ...any) *WriteHead {
	call := &WriteHead{StatusCode: statusCode}
	if len(args) == 0 {
		return call
	}

	if statusMessage, ok := args[0].(string); ok {
		call.StatusMessage = &statusMessage
		if len(args) > 1 {
			call.Headers, _ = HeaderMap(args[1])
		}
		return call
	}

	call.Headers, _ = HeaderMap(args[0])
	return call
}

type Chunk struct {
	Data     any
	HasData  bool
	Encoding string
}

// ResolveChunk accepts (), (data) and (data, encoding).
func ResolveChunk(args ...any) *Chunk {
	chunk := &Chunk{}
	if len(args) > 0 && args[0] != nil {
		chunk.Data = args[0]
		chunk.HasData = true
	}
	if len(args) > 1 {
		chunk.Encoding, _ = args[1].(string)
	}
	return chunk
}
