package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/idnakit/pkg/idna"
)

// Query parameter names of the conversion endpoints.
const (
	paramInput         = "input"
	paramASCIIDenyList = "ascii_deny_list"
	paramHyphens       = "hyphens"
	paramDNSLength     = "dns_length"
)

// Converter is the conversion backend. *idnacache.Converter implements it.
type Converter interface {
	ToASCII(ctx context.Context, input string, opts ...idna.Option) (string, error)
	ToUnicode(ctx context.Context, input string, opts ...idna.Option) (string, error)
	ToUnicodeLossy(ctx context.Context, input string, opts ...idna.Option) (string, error)
}

type convertHandlers struct {
	conv Converter
	log  *slog.Logger
}

// input returns the required input parameter. An empty value is a valid
// input; a missing one is not.
func input(q url.Values) (string, *HTTPError) {
	if !q.Has(paramInput) {
		return "", badRequest("missing query parameter: input")
	}
	return q.Get(paramInput), nil
}

// queryOptions turns present parameters into options, so a present but
// empty token is validated instead of replaced by the default.
func queryOptions(q url.Values) []idna.Option {
	var opts []idna.Option
	if q.Has(paramASCIIDenyList) {
		opts = append(opts, idna.WithASCIIDenyList(q.Get(paramASCIIDenyList)))
	}
	if q.Has(paramHyphens) {
		opts = append(opts, idna.WithHyphens(q.Get(paramHyphens)))
	}
	if q.Has(paramDNSLength) {
		opts = append(opts, idna.WithDNSLength(q.Get(paramDNSLength)))
	}
	return opts
}

func (h *convertHandlers) isASCII(w http.ResponseWriter, r *http.Request) {
	in, herr := input(r.URL.Query())
	if herr != nil {
		writeError(w, r, h.log, herr)
		return
	}
	writeResult(w, idna.IsASCII(in))
}

func (h *convertHandlers) isPunycode(w http.ResponseWriter, r *http.Request) {
	in, herr := input(r.URL.Query())
	if herr != nil {
		writeError(w, r, h.log, herr)
		return
	}
	writeResult(w, idna.IsPunycode([]byte(in)))
}

func (h *convertHandlers) toASCII(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, h.conv.ToASCII)
}

// Unicode endpoints still validate dns_length when it is supplied.
func (h *convertHandlers) toUnicode(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, h.conv.ToUnicode)
}

func (h *convertHandlers) toUnicodeLossy(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, h.conv.ToUnicodeLossy)
}

func (h *convertHandlers) convert(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, string, ...idna.Option) (string, error),
) {
	q := r.URL.Query()
	in, herr := input(q)
	if herr != nil {
		writeError(w, r, h.log, herr)
		return
	}

	out, err := fn(r.Context(), in, queryOptions(q)...)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeResult(w, out)
}
