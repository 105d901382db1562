package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/schoolpay/feeledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	idempotencyTTL       = 24 * time.Hour

	// processingMarker locks a key while its first request is in flight.
	processingMarker = "processing"
)

// storedResponse is the replayable envelope kept per idempotency key. The
// status code is persisted so a replayed 201 does not come back as a 200.
type storedResponse struct {
	StatusCode int    `json:"status_code"`
	Body       []byte `json:"body"`
}

// IdempotencyMiddleware handles request idempotency using Redis. A replayed
// payment or enrollment request returns the first attempt's response instead
// of hitting the ledger again.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only apply to mutating requests
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		exists, cachedResponse, err := m.store.CheckAndSet(r.Context(), key, nil, idempotencyTTL)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if exists {
			// The first attempt is still executing. Refusing the duplicate
			// here is what stops a concurrent resubmit from double-charging.
			if string(cachedResponse) == processingMarker {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"error":"request with this idempotency key is still being processed"}`))
				return
			}

			var stored storedResponse
			if err := json.Unmarshal(cachedResponse, &stored); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Replay", "true")
				w.WriteHeader(stored.StatusCode)
				w.Write(stored.Body)
				return
			}
			// Unreadable entry, fall through and re-run the operation.
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// Only successful responses are replayable. A failed attempt releases
		// the key so the client's retry reaches the handler again.
		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			if payload, err := json.Marshal(storedResponse{
				StatusCode: recorder.statusCode,
				Body:       recorder.body.Bytes(),
			}); err == nil {
				m.store.Update(r.Context(), key, payload, idempotencyTTL)
			}
		} else {
			m.store.Remove(r.Context(), key)
		}
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
