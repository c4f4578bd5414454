// Package apiclient is the runtime every generated client builds on.
//
// A generated client embeds *Base, obtained from [NewBase] with a
// dependency resolver, and implements each remote call as a request built
// fluently and mapped through [Call]:
//
//	req, err := c.Base.NewRequest().
//	    WithRoute("http://localhost:9090/planetary/apod").
//	    WithParams(func(params *apiclient.Params) {
//	        params.Put("api_key", apiKey)
//	    }).
//	    Build(ctx)
//	if err != nil {
//	    return nil, err
//	}
//	return apiclient.Call[nasa.ApodImage](c.Base, req)
//
// Generated packages register their constructors with [Register] from an
// init function so a loader can find them by fully-qualified name.
package apiclient

import (
	"fmt"
	"io"
	"net/http"

	"github.com/induct/apiary/inject"
	"github.com/induct/apiary/logging"
	"github.com/palantir/pkg/safejson"
)

// Transport sends HTTP requests. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Decoder maps a response body onto a value.
type Decoder interface {
	Decode(r io.Reader, v any) error
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader, v any) error

// Decode implements Decoder.
func (f DecoderFunc) Decode(r io.Reader, v any) error {
	return f(r, v)
}

// JSONDecoder decodes JSON bodies. Numbers decoded into interface values
// keep their textual form as json.Number.
type JSONDecoder struct{}

// Decode implements Decoder.
func (JSONDecoder) Decode(r io.Reader, v any) error {
	return safejson.Decoder(r).Decode(v)
}

// UserAgent is the User-Agent header value sent with every request. Bind it
// in the resolver to override DefaultUserAgent.
type UserAgent string

// DefaultUserAgent is used when no UserAgent is bound.
const DefaultUserAgent UserAgent = "apiary-client"

// Base carries the runtime dependencies of a generated client.
type Base struct {
	transport Transport
	decoder   Decoder
	logger    logging.Logger
	userAgent string
}

// NewBase resolves a Transport (required) and optionally a Decoder,
// a logging.Logger and a UserAgent from r.
func NewBase(r inject.Resolver) (*Base, error) {
	transport, err := inject.Resolve[Transport](r)
	if err != nil {
		return nil, fmt.Errorf("apiclient: resolving transport: %w", err)
	}
	if transport == nil {
		return nil, fmt.Errorf("apiclient: transport binding is nil")
	}
	decoder, err := inject.ResolveOr[Decoder](r, JSONDecoder{})
	if err != nil {
		return nil, fmt.Errorf("apiclient: resolving decoder: %w", err)
	}
	logger, err := inject.ResolveOr[logging.Logger](r, logging.NopLogger{})
	if err != nil {
		return nil, fmt.Errorf("apiclient: resolving logger: %w", err)
	}
	ua, err := inject.ResolveOr(r, DefaultUserAgent)
	if err != nil {
		return nil, fmt.Errorf("apiclient: resolving user agent: %w", err)
	}
	return &Base{
		transport: transport,
		decoder:   orJSON(decoder),
		logger:    logging.OrNop(logger),
		userAgent: string(ua),
	}, nil
}

// NewBaseWith builds a Base from explicit collaborators. A nil decoder or
// logger selects the default.
func NewBaseWith(transport Transport, decoder Decoder, logger logging.Logger) *Base {
	return &Base{
		transport: transport,
		decoder:   orJSON(decoder),
		logger:    logging.OrNop(logger),
		userAgent: string(DefaultUserAgent),
	}
}

// Logger returns the logger the client reports through.
func (b *Base) Logger() logging.Logger {
	return b.logger
}

// NewRequest starts building a GET request.
func (b *Base) NewRequest() *RequestBuilder {
	return &RequestBuilder{
		base:   b,
		method: http.MethodGet,
		params: newParams(),
	}
}

func orJSON(d Decoder) Decoder {
	if d == nil {
		return JSONDecoder{}
	}
	return d
}
