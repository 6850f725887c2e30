package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/idnakit/internal/registry"
	"github.com/dmitrymomot/idnakit/pkg/idna"
)

const maxBodyBytes = 1 << 16

type domainHandlers struct {
	reg *registry.Registry
	log *slog.Logger
}

// registerRequest uses pointers so a present but empty token reaches the
// parser.
type registerRequest struct {
	Name          string  `json:"name"`
	ASCIIDenyList *string `json:"ascii_deny_list,omitempty"`
	Hyphens       *string `json:"hyphens,omitempty"`
	DNSLength     *string `json:"dns_length,omitempty"`
}

func (req registerRequest) options() []idna.Option {
	var opts []idna.Option
	if req.ASCIIDenyList != nil {
		opts = append(opts, idna.WithASCIIDenyList(*req.ASCIIDenyList))
	}
	if req.Hyphens != nil {
		opts = append(opts, idna.WithHyphens(*req.Hyphens))
	}
	if req.DNSLength != nil {
		opts = append(opts, idna.WithDNSLength(*req.DNSLength))
	}
	return opts
}

type listResponse struct {
	Domains []*registry.Domain `json:"domains"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
}

func (h *domainHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "empty request body"
		}
		writeError(w, r, h.log, badRequest(msg))
		return
	}

	d, err := h.reg.Register(r.Context(), req.Name, req.options()...)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	w.Header().Set("Location", "/v1/domains/"+url.PathEscape(d.ASCIIName))
	writeJSON(w, http.StatusCreated, d)
}

func (h *domainHandlers) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q, "limit", registry.DefaultListLimit)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	offset, err := intParam(q, "offset", 0)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if limit <= 0 {
		limit = registry.DefaultListLimit
	}
	limit = min(limit, registry.MaxListLimit)
	offset = max(offset, 0)

	domains, err := h.reg.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if domains == nil {
		domains = []*registry.Domain{}
	}
	writeJSON(w, http.StatusOK, listResponse{
		Domains: domains,
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *domainHandlers) get(w http.ResponseWriter, r *http.Request) {
	name, herr := nameParam(r)
	if herr != nil {
		writeError(w, r, h.log, herr)
		return
	}

	d, err := h.reg.Lookup(r.Context(), name, queryOptions(r.URL.Query())...)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *domainHandlers) delete(w http.ResponseWriter, r *http.Request) {
	name, herr := nameParam(r)
	if herr != nil {
		writeError(w, r, h.log, herr)
		return
	}

	if err := h.reg.Delete(r.Context(), name, queryOptions(r.URL.Query())...); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type challengeResponse struct {
	Record string `json:"record"`
	Type   string `json:"type"`
	Token  string `json:"token"`
}

func (h *domainHandlers) challenge(w http.ResponseWriter, r *http.Request) {
	name, herr := nameParam(r)
	if herr != nil {
		writeError(w, r, h.log, herr)
		return
	}

	d, err := h.reg.Lookup(r.Context(), name, queryOptions(r.URL.Query())...)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	record, token, err := h.reg.Challenge(d)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, challengeResponse{Record: record, Type: "TXT", Token: token})
}

func (h *domainHandlers) verify(w http.ResponseWriter, r *http.Request) {
	name, herr := nameParam(r)
	if herr != nil {
		writeError(w, r, h.log, herr)
		return
	}

	d, err := h.reg.Verify(r.Context(), name, queryOptions(r.URL.Query())...)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func nameParam(r *http.Request) (string, *HTTPError) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		return "", badRequest("malformed domain name in path")
	}
	return name, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	if !q.Has(key) {
		return def, nil
	}
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0, badRequest("query parameter " + key + " must be an integer")
	}
	return n, nil
}
