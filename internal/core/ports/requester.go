package ports

import "context"

// Requester executes one request against the backend and returns the
// response body as JSON text ("{}" for an empty body). Failures are always
// a classified *domain.Error.
type Requester interface {
	Do(ctx context.Context, method, path string, body any) ([]byte, error)
}
