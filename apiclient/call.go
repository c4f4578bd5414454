package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// Call dispatches req and decodes a 200 response body into a new T.
//
// Any other status, or a 200 without a body, yields (nil, nil): the result
// is absent rather than an error. Transport and decoding failures are
// returned as errors.
func Call[T any](b *Base, req *Request) (*T, error) {
	resp, err := req.Dispatch()
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Close() }()

	if resp.StatusCode != http.StatusOK {
		b.logger.Debug("call returned no result", "url", req.URL(), "status", resp.StatusCode)
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: reading response from %s: %w", req.URL(), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		b.logger.Debug("call returned an empty body", "url", req.URL())
		return nil, nil
	}

	var out T
	if err := b.decoder.Decode(bytes.NewReader(data), &out); err != nil {
		return nil, fmt.Errorf("apiclient: decoding response from %s: %w", req.URL(), err)
	}
	return &out, nil
}
