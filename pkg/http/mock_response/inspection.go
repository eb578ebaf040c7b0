package mock_response

import (
	"fmt"
	"strconv"
	"strings"

	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
	mockResponseErrors "github.com/Motmedel/mock_http_go/pkg/http/mock_response/errors"
	motmedelMaps "github.com/Motmedel/mock_http_go/pkg/maps"
	"github.com/goccy/go-json"
)

func (response *Response) IsEndCalled() bool {
	return response.ended
}

func (response *Response) IsHeadersSent() bool {
	return response.HeadersSent
}

// GetData returns the body as stored, which is a structured value when one
// was sent.
func (response *Response) GetData() any {
	return response.data
}

// GetBody returns the body as text. A structured body is rendered as JSON.
func (response *Response) GetBody() string {
	return stringify(response.data)
}

func (response *Response) GetJsonData(target any) error {
	if target == nil {
		return motmedelErrors.NewWithTrace(mockResponseErrors.ErrNilTarget)
	}

	body := []byte(response.GetBody())
	if err := json.Unmarshal(body, target); err != nil {
		return motmedelErrors.NewWithTrace(fmt.Errorf("json unmarshal: %w", err), body)
	}

	return nil
}

func (response *Response) GetStatusCode() int {
	return response.StatusCode
}

func (response *Response) GetStatusMessage() string {
	return response.StatusMessage
}

func (response *Response) GetEncoding() string {
	return response.encoding
}

func (response *Response) IsJson() bool {
	value, ok := response.GetHeader("Content-Type").(string)
	return ok && value == ContentTypeJson
}

func (response *Response) IsUtf8() bool {
	return response.encoding == Utf8Encoding
}

// IsDataLengthValid compares a Content-Length header, when present, with the
// byte length of the body.
func (response *Response) IsDataLengthValid() bool {
	value := response.GetHeader("Content-Length")
	if value == nil {
		return true
	}

	var contentLength string
	switch typedValue := value.(type) {
	case []string:
		if len(typedValue) == 0 {
			return false
		}
		contentLength = typedValue[0]
	default:
		contentLength = headerString(typedValue)
	}

	length, err := strconv.Atoi(strings.TrimSpace(contentLength))
	if err != nil {
		return false
	}

	return length == len(response.GetBody())
}

func (response *Response) GetRedirectUrl() string {
	return response.redirectUrl
}

func (response *Response) GetRenderView() string {
	return response.renderView
}

func (response *Response) GetRenderData() any {
	return response.renderData
}

// GetLocal returns the local stored under key as a T.
func GetLocal[T any](response *Response, key string) (T, error) {
	var zero T

	if response == nil {
		return zero, motmedelErrors.NewWithTrace(mockResponseErrors.ErrNilResponse)
	}

	value, err := motmedelMaps.MapGetConvert[T](response.Locals, key)
	if err != nil {
		return zero, fmt.Errorf("map get convert (local %q): %w", key, err)
	}

	return value, nil
}
