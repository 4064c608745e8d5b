// Package apitest provides an in-process fake of the payments API's transfer
// endpoints, for exercising the SDK without a real backend. It implements the
// wire contract the client package speaks: list envelopes, cursor pagination,
// created-range filters and structured error bodies.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payapi"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Server is a fake payments API backed by an in-memory transfer set, kept in
// most-recently-created-first order. It implements http.Handler and is safe
// for concurrent use.
type Server struct {
	mu        sync.Mutex
	transfers []payapi.Transfer
	nextID    int

	router chi.Router
}

// New creates an empty Server.
func New() *Server {
	s := &Server{}

	r := chi.NewRouter()
	r.Route("/transfers", func(r chi.Router) {
		r.Get("/", s.listTransfers)
		r.Post("/", s.createTransfer)
		r.Get("/{id}", s.getTransfer)
		r.Post("/{id}", s.updateTransfer)
		r.Get("/{id}/reversals", s.listReversals)
	})
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Seed adds transfers to the server, keeping newest-first order. Seeded
// fixtures must be well formed: a transfer with Reversed true carries
// AmountReversed equal to Amount.
func (s *Server) Seed(transfers ...payapi.Transfer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transfers = append(s.transfers, transfers...)
	sort.SliceStable(s.transfers, func(i, j int) bool {
		return s.transfers[i].Created > s.transfers[j].Created
	})
}

func (s *Server) listTransfers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()

	filtered := make([]payapi.Transfer, 0, len(s.transfers))
	for _, t := range s.transfers {
		if matchesCreated(q, t.Created) {
			filtered = append(filtered, t)
		}
	}

	limit := parseLimit(q.Get("limit"))

	var page []payapi.Transfer
	var hasMore bool

	switch {
	case q.Get("starting_after") != "":
		idx := indexOf(filtered, q.Get("starting_after"))
		if idx < 0 {
			writeError(w, http.StatusBadRequest, payapi.ErrorTypeInvalidRequest,
				"resource_missing", "No such transfer: "+q.Get("starting_after"), "starting_after")
			return
		}
		window := filtered[idx+1:]
		page, hasMore = firstN(window, limit)
	case q.Get("ending_before") != "":
		idx := indexOf(filtered, q.Get("ending_before"))
		if idx < 0 {
			writeError(w, http.StatusBadRequest, payapi.ErrorTypeInvalidRequest,
				"resource_missing", "No such transfer: "+q.Get("ending_before"), "ending_before")
			return
		}
		window := filtered[:idx]
		if len(window) > limit {
			page = window[len(window)-limit:]
			hasMore = true
		} else {
			page = window
		}
	default:
		page, hasMore = firstN(filtered, limit)
	}

	if page == nil {
		page = []payapi.Transfer{}
	}

	writeJSON(w, http.StatusOK, payapi.List[payapi.Transfer]{
		Object:  "list",
		Data:    page,
		HasMore: hasMore,
		URL:     "/v1/transfers",
	})
}

func (s *Server) getTransfer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	idx := indexOf(s.transfers, id)
	if idx < 0 {
		writeError(w, http.StatusNotFound, payapi.ErrorTypeInvalidRequest,
			"resource_missing", "No such transfer: "+id, "id")
		return
	}

	writeJSON(w, http.StatusOK, s.transfers[idx])
}

func (s *Server) createTransfer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, payapi.ErrorTypeInvalidRequest,
			"", "Could not parse request body", "")
		return
	}

	amount, err := strconv.ParseInt(r.PostForm.Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		writeError(w, http.StatusBadRequest, payapi.ErrorTypeInvalidRequest,
			"parameter_invalid_integer", "Invalid positive integer", "amount")
		return
	}

	currency := payapi.Currency(r.PostForm.Get("currency"))
	if currency == "" {
		writeError(w, http.StatusBadRequest, payapi.ErrorTypeInvalidRequest,
			"parameter_missing", "Missing required param: currency", "currency")
		return
	}

	destination := r.PostForm.Get("destination")
	if destination == "" {
		writeError(w, http.StatusBadRequest, payapi.ErrorTypeInvalidRequest,
			"parameter_missing", "Missing required param: destination", "destination")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := fmt.Sprintf("tr_%d", s.nextID)

	transfer := payapi.Transfer{
		ID:          id,
		Amount:      amount,
		Created:     payapi.NewTimestamp(time.Now()),
		Currency:    currency,
		Destination: payapi.ExpandableID[payapi.Account](destination),
		Metadata:    formMetadata(r.PostForm),
		Reversals: payapi.List[payapi.TransferReversal]{
			Object: "list",
			Data:   []payapi.TransferReversal{},
			URL:    "/v1/transfers/" + id + "/reversals",
		},
	}

	if desc := r.PostForm.Get("description"); desc != "" {
		transfer.Description = payapi.String(desc)
	}
	if st := r.PostForm.Get("source_type"); st != "" {
		sourceType := payapi.TransferSourceType(st)
		transfer.SourceType = &sourceType
	}
	if group := r.PostForm.Get("transfer_group"); group != "" {
		transfer.TransferGroup = payapi.String(group)
	}

	s.transfers = append([]payapi.Transfer{transfer}, s.transfers...)

	writeJSON(w, http.StatusOK, transfer)
}

func (s *Server) updateTransfer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, payapi.ErrorTypeInvalidRequest,
			"", "Could not parse request body", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	idx := indexOf(s.transfers, id)
	if idx < 0 {
		writeError(w, http.StatusNotFound, payapi.ErrorTypeInvalidRequest,
			"resource_missing", "No such transfer: "+id, "id")
		return
	}

	transfer := &s.transfers[idx]
	if desc := r.PostForm.Get("description"); desc != "" {
		transfer.Description = payapi.String(desc)
	}
	for k, v := range formMetadata(r.PostForm) {
		if transfer.Metadata == nil {
			transfer.Metadata = payapi.Metadata{}
		}
		transfer.Metadata[k] = v
	}

	writeJSON(w, http.StatusOK, *transfer)
}

func (s *Server) listReversals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	idx := indexOf(s.transfers, id)
	if idx < 0 {
		writeError(w, http.StatusNotFound, payapi.ErrorTypeInvalidRequest,
			"resource_missing", "No such transfer: "+id, "id")
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"))
	page, hasMore := firstN(s.transfers[idx].Reversals.Data, limit)
	if page == nil {
		page = []payapi.TransferReversal{}
	}

	writeJSON(w, http.StatusOK, payapi.List[payapi.TransferReversal]{
		Object:  "list",
		Data:    page,
		HasMore: hasMore,
		URL:     "/v1/transfers/" + id + "/reversals",
	})
}

// matchesCreated applies the created[gt|gte|lt|lte] query filters.
func matchesCreated(q map[string][]string, created payapi.Timestamp) bool {
	bounds := map[string]func(int64) bool{
		"created[gt]":  func(b int64) bool { return int64(created) > b },
		"created[gte]": func(b int64) bool { return int64(created) >= b },
		"created[lt]":  func(b int64) bool { return int64(created) < b },
		"created[lte]": func(b int64) bool { return int64(created) <= b },
	}

	for key, match := range bounds {
		vals, ok := q[key]
		if !ok || len(vals) == 0 {
			continue
		}
		bound, err := strconv.ParseInt(vals[0], 10, 64)
		if err != nil || !match(bound) {
			return false
		}
	}
	return true
}

func parseLimit(raw string) int {
	limit := defaultLimit
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

func indexOf(transfers []payapi.Transfer, id string) int {
	for i := range transfers {
		if transfers[i].ID == id {
			return i
		}
	}
	return -1
}

func firstN[T any](window []T, n int) ([]T, bool) {
	if len(window) > n {
		return window[:n], true
	}
	return window, false
}

func formMetadata(form map[string][]string) payapi.Metadata {
	md := payapi.Metadata{}
	for key, vals := range form {
		if len(vals) == 0 {
			continue
		}
		if strings.HasPrefix(key, "metadata[") && strings.HasSuffix(key, "]") {
			md[key[len("metadata["):len(key)-1]] = vals[0]
		}
	}
	return md
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, errType payapi.ErrorType, code, message, param string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payapi.ErrorEnvelope{
		Error: &payapi.Error{
			Type:    errType,
			Code:    code,
			Message: message,
			Param:   param,
		},
	})
}
