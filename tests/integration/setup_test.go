package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/gobank/internal/adapter/http"
	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/journal"
	"github.com/iho/gobank/internal/adapter/repository/memory"
	"github.com/iho/gobank/internal/infrastructure/auth"
	"github.com/iho/gobank/internal/infrastructure/retry"
	"github.com/iho/gobank/internal/usecase"
)

// newTestRouter wires the full in-memory stack behind the HTTP router.
// A nil jwtManager leaves all endpoints open.
func newTestRouter(t *testing.T, jwtManager *auth.JWTManager) http.Handler {
	t.Helper()

	log := zerolog.New(io.Discard)

	registry := memory.NewAccountRegistry()
	idGen := memory.NewULIDGenerator()
	retrier := retry.NewRetrier(2, time.Millisecond, log)
	txJournal := journal.New(log, nil)

	accountUC := usecase.NewAccountUseCase(registry, idGen)
	transferUC := usecase.NewTransferCoordinator(registry, idGen, txJournal, retrier, log)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:  handler.NewAccountHandler(accountUC),
		TransferHandler: handler.NewTransferHandler(transferUC),
		HealthHandler:   handler.NewHealthHandler(),
		JWTManager:      jwtManager,
	})
}

// doRequest performs a JSON request against the router and decodes the
// response body into out when out is non-nil.
func doRequest(t *testing.T, router http.Handler, method, path string, payload any, out any) int {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, path, body)
	if payload != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if out != nil && w.Code < http.StatusBadRequest {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
		}
	}

	return w.Code
}
