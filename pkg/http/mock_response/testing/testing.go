package testing

import (
	"testing"

	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
	"github.com/Motmedel/mock_http_go/pkg/errors/types/mismatch_error"
	"github.com/Motmedel/mock_http_go/pkg/http/mock_response"
	mockResponseErrors "github.com/Motmedel/mock_http_go/pkg/http/mock_response/errors"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
)

// Expectation describes the final state of a mock response. Zero fields are
// not checked, except Ended which is checked when non-nil.
type Expectation struct {
	StatusCode    int
	StatusMessage string
	Headers       map[string]any
	Body          string
	Data          any
	Ended         *bool
	RedirectUrl   string
	RenderView    string
	RenderData    any
}

// Check compares response with expectation and returns every mismatch.
func Check(response *mock_response.Response, expectation *Expectation) error {
	if response == nil {
		return motmedelErrors.NewWithTrace(mockResponseErrors.ErrNilResponse)
	}
	if expectation == nil {
		return nil
	}

	var err error

	if expected := expectation.StatusCode; expected != 0 && expected != response.GetStatusCode() {
		err = multierr.Append(err, mismatch_error.New("status code", expected, response.GetStatusCode()))
	}

	if expected := expectation.StatusMessage; expected != "" && expected != response.GetStatusMessage() {
		err = multierr.Append(err, mismatch_error.New("status message", expected, response.GetStatusMessage()))
	}

	if expected := expectation.Headers; len(expected) != 0 {
		for name, expectedValue := range expected {
			got := response.GetHeader(name)
			if diff := cmp.Diff(expectedValue, got); diff != "" {
				err = multierr.Append(err, mismatch_error.New("header "+name, expectedValue, got))
			}
		}
	}

	if expected := expectation.Body; expected != "" && expected != response.GetBody() {
		err = multierr.Append(err, mismatch_error.New("body", expected, response.GetBody()))
	}

	if expected := expectation.Data; expected != nil {
		if diff := cmp.Diff(expected, response.GetData()); diff != "" {
			err = multierr.Append(err, mismatch_error.New("data", expected, response.GetData()))
		}
	}

	if expected := expectation.Ended; expected != nil && *expected != response.IsEndCalled() {
		err = multierr.Append(err, mismatch_error.New("ended", *expected, response.IsEndCalled()))
	}

	if expected := expectation.RedirectUrl; expected != "" && expected != response.GetRedirectUrl() {
		err = multierr.Append(err, mismatch_error.New("redirect url", expected, response.GetRedirectUrl()))
	}

	if expected := expectation.RenderView; expected != "" && expected != response.GetRenderView() {
		err = multierr.Append(err, mismatch_error.New("render view", expected, response.GetRenderView()))
	}

	if expected := expectation.RenderData; expected != nil {
		if diff := cmp.Diff(expected, response.GetRenderData()); diff != "" {
			err = multierr.Append(err, mismatch_error.New("render data", expected, response.GetRenderData()))
		}
	}

	return err
}

func TestExpectation(t *testing.T, response *mock_response.Response, expectation *Expectation) {
	t.Helper()

	for _, err := range multierr.Errors(Check(response, expectation)) {
		t.Error(err)
	}
}
