package quorum

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errTrailingData = errors.New("unexpected data after json document")

// tally counts identical responses. Responses are compared by their canonical
// form; the first seen response wins a tie.
type tally struct {
	counts  map[string]int
	origins map[string]string
	order   []string
	total   int
}

func newTally() *tally {
	return &tally{
		counts:  make(map[string]int),
		origins: make(map[string]string),
	}
}

// add counts a response returned from the given url.
func (t *tally) add(body, url string) {
	if _, ok := t.counts[body]; !ok {
		t.order = append(t.order, body)
		t.origins[body] = url
	}

	t.counts[body]++
	t.total++
}

func (t *tally) empty() bool {
	return t.total == 0
}

// origin returns the url of the first node that returned the body.
func (t *tally) origin(body string) string {
	return t.origins[body]
}

// winner returns the most common response and its count.
func (t *tally) winner() (string, int) {
	var (
		best  string
		count int
	)

	for _, body := range t.order {
		if c := t.counts[body]; c > count {
			best, count = body, c
		}
	}

	return best, count
}

// canonicalJSON re-encodes a JSON document so that responses differing only
// in whitespace or object key order compare equal.
func canonicalJSON(text string) (string, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return "", err
	}

	// Trailing data means the body is not a single JSON document.
	if dec.More() {
		return "", errTrailingData
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
