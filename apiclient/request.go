package apiclient

import (
	"context"
	"encoding"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// ErrAbsentValue is reported by Params.Put for a nil value.
var ErrAbsentValue = errors.New("value is absent")

// DateLayout formats time values that carry no clock component.
const DateLayout = "2006-01-02"

// Params accumulates query parameters for a request.
type Params struct {
	values url.Values
	errs   []error
}

func newParams() *Params {
	return &Params{values: url.Values{}}
}

// Put adds value under key. Slices and arrays add one entry per element.
// A nil value, or a nil pointer, records an error that Build returns.
func (p *Params) Put(key string, value any) {
	formatted, err := FormatValues(value)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("parameter %q: %w", key, err))
		return
	}
	for _, v := range formatted {
		p.values.Add(key, v)
	}
}

// Len returns the number of distinct keys.
func (p *Params) Len() int {
	return len(p.values)
}

// Values returns a copy of the accumulated parameters.
func (p *Params) Values() url.Values {
	out := make(url.Values, len(p.values))
	for k, vs := range p.values {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// FormatValues renders a parameter value as one or more query strings.
func FormatValues(value any) ([]string, error) {
	if value == nil {
		return nil, ErrAbsentValue
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, ErrAbsentValue
		}
		rv = rv.Elem()
	}

	if s, ok := formatScalar(rv); ok {
		return []string{s}, nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]string, 0, rv.Len())
		for i := range rv.Len() {
			elem, err := FormatValues(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, elem...)
		}
		return out, nil
	case reflect.Map, reflect.Struct, reflect.Func, reflect.Chan, reflect.Interface:
		return nil, fmt.Errorf("cannot format %s as a query parameter", rv.Type())
	default:
		return []string{fmt.Sprint(rv.Interface())}, nil
	}
}

func formatScalar(rv reflect.Value) (string, bool) {
	if !rv.CanInterface() {
		return "", false
	}
	switch v := rv.Interface().(type) {
	case time.Time:
		return formatTime(v), true
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil {
			return "", false
		}
		return string(text), true
	case fmt.Stringer:
		return v.String(), true
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), true
	}
	return "", false
}

// formatTime renders midnight values as plain dates.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(time.RFC3339)
}

// RequestBuilder assembles a request step by step.
type RequestBuilder struct {
	base   *Base
	method string
	route  string
	params *Params
}

// WithRoute sets the absolute URL of the call.
func (rb *RequestBuilder) WithRoute(route string) *RequestBuilder {
	rb.route = route
	return rb
}

// WithMethod overrides the HTTP method. The default is GET.
func (rb *RequestBuilder) WithMethod(method string) *RequestBuilder {
	rb.method = method
	return rb
}

// WithParams lets fill add query parameters.
func (rb *RequestBuilder) WithParams(fill func(params *Params)) *RequestBuilder {
	fill(rb.params)
	return rb
}

// Build validates the accumulated state and produces a Request bound to ctx.
func (rb *RequestBuilder) Build(ctx context.Context) (*Request, error) {
	if rb.route == "" {
		return nil, errors.New("apiclient: request has no route")
	}
	if len(rb.params.errs) > 0 {
		return nil, fmt.Errorf("apiclient: building request for %s: %w", rb.route, errors.Join(rb.params.errs...))
	}

	u, err := url.Parse(rb.route)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid route %q: %w", rb.route, err)
	}
	if rb.params.Len() > 0 {
		query := u.Query()
		for k, vs := range rb.params.values {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, rb.method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("apiclient: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if rb.base.userAgent != "" {
		req.Header.Set("User-Agent", rb.base.userAgent)
	}
	return &Request{base: rb.base, req: req}, nil
}

// Request is a built request ready to dispatch.
type Request struct {
	base *Base
	req  *http.Request
}

// URL returns the full request URL.
func (r *Request) URL() string {
	return r.req.URL.String()
}

// HTTPRequest returns the underlying *http.Request.
func (r *Request) HTTPRequest() *http.Request {
	return r.req
}

// Dispatch sends the request through the client's transport.
func (r *Request) Dispatch() (*Response, error) {
	resp, err := r.base.transport.Do(r.req)
	if err != nil {
		return nil, fmt.Errorf("apiclient: %s %s: %w", r.req.Method, r.URL(), err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: resp.Body}, nil
}

// Response is the transport's answer to a Request. Callers must Close it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Close drains and closes the body.
func (r *Response) Close() error {
	if r.Body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return r.Body.Close()
}
