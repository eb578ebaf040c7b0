package mock_response

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
	mockResponseErrors "github.com/Motmedel/mock_http_go/pkg/http/mock_response/errors"
	"github.com/Motmedel/mock_http_go/pkg/http/mock_response/types/call_shape"
	motmedelLog "github.com/Motmedel/mock_http_go/pkg/log"
	"github.com/Motmedel/mock_http_go/pkg/utils"
	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// isStructured reports whether value is an object rather than a scalar.
// Strings and byte slices are scalars.
func isStructured(value any) bool {
	if utils.IsNil(value) {
		return false
	}
	if _, ok := value.([]byte); ok {
		return false
	}

	reflectValue := reflect.Indirect(reflect.ValueOf(value))
	switch reflectValue.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// lookupField finds name among the keys of a map, or among the json names
// and field names of a struct.
func lookupField(value any, name string) (any, bool) {
	reflectValue := reflect.Indirect(reflect.ValueOf(value))

	switch reflectValue.Kind() {
	case reflect.Map:
		if reflectValue.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		fieldValue := reflectValue.MapIndex(reflect.ValueOf(name).Convert(reflectValue.Type().Key()))
		if !fieldValue.IsValid() {
			return nil, false
		}
		return fieldValue.Interface(), true
	case reflect.Struct:
		reflectType := reflectValue.Type()
		for i := 0; i < reflectType.NumField(); i++ {
			field := reflectType.Field(i)
			if !field.IsExported() {
				continue
			}
			if jsonFieldName(field) == name || strings.EqualFold(field.Name, name) {
				return reflectValue.Field(i).Interface(), true
			}
		}
	}

	return nil, false
}

// isTruthy follows the truthiness rules of the framework API being modelled:
// nil, false, zero numbers and empty strings are falsy.
func isTruthy(value any) bool {
	if utils.IsNil(value) {
		return false
	}

	switch typedValue := value.(type) {
	case bool:
		return typedValue
	case string:
		return typedValue != ""
	}

	if call_shape.IsNumber(value) {
		return !reflect.ValueOf(value).IsZero()
	}

	return true
}

func truthyField(value any, name string) (any, bool) {
	fieldValue, ok := lookupField(value, name)
	if !ok || !isTruthy(fieldValue) {
		return nil, false
	}
	return fieldValue, true
}

func stringify(value any) string {
	if utils.IsNil(value) {
		return ""
	}

	switch typedValue := value.(type) {
	case string:
		return typedValue
	case []byte:
		return string(typedValue)
	}

	if isStructured(value) {
		if data, err := json.Marshal(value); err == nil {
			return string(data)
		}
	}

	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprint(value)
}

// appendData concatenates value onto the body. A structured body is
// rendered as JSON first.
func (response *Response) appendData(value any) {
	if utils.IsNil(value) {
		return
	}
	response.data = stringify(response.data) + stringify(value)
}

// formatData adopts the status code and body carried by a structured value,
// replacing the body. Scalars are appended.
func (response *Response) formatData(data any) {
	if !isStructured(data) {
		response.appendData(data)
		return
	}

	if statusCodeValue, ok := truthyField(data, "statusCode"); ok {
		if statusCode, ok := call_shape.StatusCode(statusCodeValue); ok {
			response.StatusCode = statusCode
		}
	} else if _, ok := truthyField(data, "httpCode"); ok {
		// The httpCode branch reads statusCode, which is absent here, so the
		// status is left as is.
		if statusCode, ok := call_shape.StatusCode(statusCodeValue); ok {
			response.StatusCode = statusCode
		}
	}

	if body, ok := truthyField(data, "body"); ok {
		response.data = body
	} else {
		response.data = data
	}
}

func (response *Response) warnDeprecated(operation string, shape fmt.Stringer) {
	warning := &mockResponseErrors.DeprecationWarning{Operation: operation, Shape: shape.String()}
	motmedelLog.LogWarning(
		context.Background(),
		response.logger,
		fmt.Sprintf("Called %s with a deprecated call shape.", operation),
		warning,
		slog.String("shape", warning.Shape),
	)
}

func (response *Response) emitSendAndEnd() {
	response.notifier.Emit(EventSend)
	response.notifier.Emit(EventEnd)
}

// Send infers what to do from the number and the types of its arguments:
//
//	Send(statusCode)
//	Send(body)
//	Send(statusCode, body)
//	Send(body, statusCode)             deprecated
//	Send(body, encoding)
//	Send(body, headers, statusCode)    deprecated, replaces all headers
//
// A structured body carrying a statusCode field sets the status, and one
// carrying a body field replaces the body with that field. Other bodies are
// appended.
//
// Send marks the headers as sent and emits "send" then "end". It does not end
// the response.
func (response *Response) Send(args ...any) *Response {
	call := call_shape.ResolveSend(args...)

	switch call.Kind {
	case call_shape.SendStatus:
		response.StatusCode = call.StatusCode
	case call_shape.SendBody:
		response.formatData(call.Body)
	case call_shape.SendStatusBody:
		response.StatusCode = call.StatusCode
		response.formatData(call.Body)
	case call_shape.SendBodyStatus:
		response.formatData(call.Body)
		response.StatusCode = call.StatusCode
	case call_shape.SendBodyEncoding:
		response.formatData(call.Body)
		response.encoding = call.Encoding
	case call_shape.SendBodyHeadersStatus:
		response.formatData(call.Body)
		response.headers = make(map[string]any, len(call.Headers))
		for name, value := range call.Headers {
			response.headers[name] = coerceHeaderValue(value)
		}
		if call.HasStatusCode {
			response.StatusCode = call.StatusCode
		}
	}

	if call.Deprecated() {
		response.warnDeprecated("send", call.Kind)
	}

	response.HeadersSent = true
	response.emitSendAndEnd()

	return response
}

// SendStatus sets the status code and sends its reason phrase as plain text.
func (response *Response) SendStatus(statusCode int) *Response {
	response.StatusCode = statusCode
	response.SetContentType(ContentTypeText)

	phrase, ok := response.statusPhraser.Phrase(statusCode)
	if !ok {
		phrase = strconv.Itoa(statusCode)
	}

	return response.Send(phrase)
}

// writeJson marshals every payload before touching the response, so a
// payload that cannot be marshalled leaves it unchanged.
func (response *Response) writeJson(contentType string, args ...any) (*Response, error) {
	arguments := call_shape.ResolveJson(args...).Arguments

	chunks := make([][]byte, len(arguments))
	for i, argument := range arguments {
		if argument.IsStatusCode {
			continue
		}

		data, err := json.Marshal(argument.Payload)
		if err != nil {
			return response, motmedelErrors.NewWithTrace(fmt.Errorf("json marshal: %w", err), argument.Payload)
		}
		chunks[i] = data
	}

	response.SetHeader("Content-Type", contentType)
	for i, argument := range arguments {
		if argument.IsStatusCode {
			response.StatusCode = argument.StatusCode
			continue
		}
		response.appendData(string(chunks[i]))
	}

	response.HeadersSent = true
	response.emitSendAndEnd()

	return response, nil
}

// Json sets the content type to application/json. Each of up to two
// arguments either sets the status code, when numeric, or is serialized and
// appended to the body.
func (response *Response) Json(args ...any) (*Response, error) {
	return response.writeJson(ContentTypeJson, args...)
}

// Jsonp is Json with a text/javascript content type.
func (response *Response) Jsonp(args ...any) (*Response, error) {
	return response.writeJson(ContentTypeJavascript, args...)
}
