package mock_response

import (
	"fmt"
	"maps"
	"mime"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/Motmedel/mock_http_go/pkg/http/mock_response/types/call_shape"
	"github.com/spf13/cast"
)

func headerString(value any) string {
	if value == nil {
		return ""
	}
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprint(value)
}

// coerceHeaderValue stores strings as strings and sequences as a slice of
// strings, element by element. Everything else is stringified.
func coerceHeaderValue(value any) any {
	switch typedValue := value.(type) {
	case string:
		return typedValue
	case []string:
		return slices.Clone(typedValue)
	case []byte:
		return string(typedValue)
	}

	if value != nil {
		reflectValue := reflect.ValueOf(value)
		if kind := reflectValue.Kind(); kind == reflect.Slice || kind == reflect.Array {
			values := make([]string, reflectValue.Len())
			for i := range values {
				values[i] = headerString(reflectValue.Index(i).Interface())
			}
			return values
		}
	}

	return headerString(value)
}

// SetHeader stores value under the exact name given and returns the stored
// value.
func (response *Response) SetHeader(name string, value any) any {
	storedValue := coerceHeaderValue(value)
	response.headers[name] = storedValue
	return storedValue
}

// GetHeader looks name up as given, then lower-cased, then upper-cased, and
// finally compares it case-insensitively with every stored name. It returns
// nil when none of them is set.
func (response *Response) GetHeader(name string) any {
	for _, candidate := range []string{name, strings.ToLower(name), strings.ToUpper(name)} {
		if value, ok := response.headers[candidate]; ok {
			return value
		}
	}

	for _, storedName := range slices.Sorted(maps.Keys(response.headers)) {
		if strings.EqualFold(storedName, name) {
			return response.headers[storedName]
		}
	}

	return nil
}

func (response *Response) HasHeader(name string) bool {
	return response.GetHeader(name) != nil
}

func (response *Response) GetHeaderNames() []string {
	return slices.Sorted(maps.Keys(response.headers))
}

// RemoveHeader deletes the exact name only.
func (response *Response) RemoveHeader(name string) {
	delete(response.headers, name)
}

// SetHeaders accepts either a name and a value, or a single map of names to
// values.
func (response *Response) SetHeaders(nameOrMap any, value ...any) *Response {
	if name, ok := nameOrMap.(string); ok {
		if len(value) > 0 {
			response.SetHeader(name, value[0])
		}
		return response
	}

	if headers, ok := call_shape.HeaderMap(nameOrMap); ok {
		for _, name := range slices.Sorted(maps.Keys(headers)) {
			response.SetHeader(name, headers[name])
		}
	}

	return response
}

// SetContentType uses contentType verbatim when it contains a "/" and
// resolves it as a file extension otherwise.
func (response *Response) SetContentType(contentType string) *Response {
	if !strings.Contains(contentType, "/") {
		contentType = response.mimeResolver.Lookup(contentType)
	}
	return response.SetHeaders("Content-Type", contentType)
}

func varyTokens(value any) []string {
	var header string
	switch typedValue := value.(type) {
	case nil:
	case []string:
		header = strings.Join(typedValue, ", ")
	default:
		header = headerString(typedValue)
	}

	if header == "" {
		return nil
	}
	return strings.Split(header, ", ")
}

func varyPattern(field string) *regexp.Regexp {
	pattern, err := regexp.Compile("(?i)" + field)
	if err != nil {
		return regexp.MustCompile("(?i)" + regexp.QuoteMeta(field))
	}
	return pattern
}

// varyCovered reports whether field and token match each other in either
// direction, each used as a case-insensitive pattern against the other.
func varyCovered(field string, token string) bool {
	return varyPattern(field).MatchString(token) || varyPattern(token).MatchString(field)
}

// Vary adds fields to the Vary header. A field is skipped when it is covered
// by an existing token or by a field added before it.
func (response *Response) Vary(fields ...string) *Response {
	tokens := varyTokens(response.GetHeader("Vary"))

	var added []string
	for _, field := range fields {
		if field == "" {
			continue
		}
		covered := slices.ContainsFunc(
			append(slices.Clone(tokens), added...),
			func(token string) bool { return varyCovered(field, token) },
		)
		if !covered {
			added = append(added, field)
		}
	}

	if len(added) == 0 {
		return response
	}

	response.SetHeader("Vary", strings.Join(append(tokens, added...), ", "))
	return response
}

// Append adds value to the values of the header name, turning it into a
// sequence.
func (response *Response) Append(name string, value any) *Response {
	var values []string

	switch existing := response.GetHeader(name).(type) {
	case nil:
	case []string:
		values = slices.Clone(existing)
	default:
		values = []string{headerString(existing)}
	}

	switch addedValue := coerceHeaderValue(value).(type) {
	case []string:
		values = append(values, addedValue...)
	case string:
		values = append(values, addedValue)
	}

	if len(values) == 1 {
		response.SetHeader(name, values[0])
	} else {
		response.SetHeader(name, values)
	}
	return response
}

func (response *Response) Location(url string) *Response {
	return response.SetHeaders("Location", url)
}

// Attachment marks the body as a download, naming it after filename when one
// is given and deriving the content type from its extension.
func (response *Response) Attachment(filename ...string) *Response {
	if len(filename) == 0 || filename[0] == "" {
		return response.SetHeaders("Content-Disposition", "attachment")
	}

	name := filename[0]
	if index := strings.LastIndexAny(name, `/\`); index != -1 {
		name = name[index+1:]
	}

	response.SetContentType(name)
	return response.SetHeaders(
		"Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": name}),
	)
}

func (response *Response) GetHeaders() map[string]any {
	return maps.Clone(response.headers)
}
