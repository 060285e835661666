package nodeapi

import (
	"encoding/json"
	"errors"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("response body is not valid utf-8")

// Response is a successful reply of a node. The body is fully read, so the
// decoding methods can be called any number of times.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
}

// NewResponse creates a response with status 200 for the given body.
func NewResponse(url string, body []byte) *Response {
	return &Response{
		URL:        url,
		StatusCode: 200,
		Body:       body,
	}
}

// IntoJSON decodes the body into out.
func (r *Response) IntoJSON(out interface{}) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return &DecodeError{URL: r.URL, Err: err}
	}

	return nil
}

// IntoText returns the body as a string. Bodies that are not valid UTF-8 cannot
// be represented as text and produce a DecodeError.
func (r *Response) IntoText() (string, error) {
	if !utf8.Valid(r.Body) {
		return "", &DecodeError{URL: r.URL, Err: errInvalidUTF8}
	}

	return string(r.Body), nil
}

// IntoBytes returns the raw body.
func (r *Response) IntoBytes() ([]byte, error) {
	return r.Body, nil
}
