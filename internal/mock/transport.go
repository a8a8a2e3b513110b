package mock

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Transport mocks http.RoundTripper.
type Transport struct {
	Statuses []int
	Bodies   [][]byte
	Headers  []http.Header

	RoundTripFunc func(*http.Request) (*http.Response, error)
	Responses     []*http.Response

	i int
	m sync.Mutex
}

// RoundTrip fakes executing http request.
func (d *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	d.m.Lock()
	defer d.m.Unlock()
	defer func() {
		d.i++
	}()

	if d.RoundTripFunc != nil {
		return d.RoundTripFunc(r)
	}

	status := http.StatusOK
	if len(d.Statuses) > 0 {
		status = d.Statuses[d.i%len(d.Statuses)]
	}
	var data []byte
	if len(d.Bodies) > 0 {
		data = d.Bodies[d.i%len(d.Bodies)]
	}

	header := http.Header{}
	if len(d.Headers) > 0 {
		header = d.Headers[d.i%len(d.Headers)]
	}

	response := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(data)),
		Header:     header,
		Request:    r,
	}
	d.Responses = append(d.Responses, response)

	return response, nil
}

// Calls returns number of executed requests.
func (d *Transport) Calls() int {
	d.m.Lock()
	defer d.m.Unlock()

	return d.i
}
