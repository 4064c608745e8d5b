package payapi

import "context"

//go:generate mockgen -destination=mocks/mock_backend.go -package=mocks github.com/iho/payapi Backend

// Backend performs authenticated HTTP calls against the payments API.
// Resource operations are written against this interface so transport,
// authentication, retries and timeouts stay in the injected implementation.
//
// GET and HEAD requests encode params into the query string; other methods
// send a form-encoded body. The JSON response is decoded into v when v is
// non-nil. Transport failures, non-2xx responses and schema mismatches
// surface as errors unchanged.
type Backend interface {
	Call(ctx context.Context, method, path string, params, v any) error
}
