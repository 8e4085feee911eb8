package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	httpAdapter "github.com/atharvapisal16/household-ledger/internal/adapter/http"
	"github.com/atharvapisal16/household-ledger/internal/adapter/http/handler"
	"github.com/atharvapisal16/household-ledger/internal/adapter/repository/csvfile"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/auth"
	"github.com/atharvapisal16/household-ledger/internal/usecase"
)

// TestEnv wires the full application stack over a temporary data
// directory, the same way cmd/server does.
type TestEnv struct {
	Server  *httptest.Server
	DataDir string
	t       *testing.T
}

// NewTestEnv builds a running test server. It is torn down with the
// test.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	dataDir := t.TempDir()

	credRepo := csvfile.NewCredentialRepository(dataDir)
	expenseRepo := csvfile.NewExpenseRepository(dataDir)
	idGen := csvfile.NewULIDGenerator()

	userUC := usecase.NewUserUseCase(credRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, idGen)
	reportUC := usecase.NewReportUseCase(expenseRepo)

	jwtManager := auth.NewJWTManager("integration-secret", time.Hour)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userUC, jwtManager, nil),
		ExpenseHandler: handler.NewExpenseHandler(expenseUC, nil),
		ReportHandler:  handler.NewReportHandler(reportUC, nil),
		HealthHandler:  handler.NewHealthHandler(dataDir),
		JWTManager:     jwtManager,
		Logger:         zerolog.Nop(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestEnv{
		Server:  server,
		DataDir: dataDir,
		t:       t,
	}
}

// RegisterAndLogin creates an account and returns a bearer token.
func (e *TestEnv) RegisterAndLogin(username, password string) string {
	e.t.Helper()

	registerBody := fmt.Sprintf(`{"username":%q,"full_name":"Test User","password":%q}`, username, password)
	resp := e.Do(http.MethodPost, "/api/v1/auth/register", "", registerBody)
	if resp.StatusCode != http.StatusCreated {
		e.t.Fatalf("register failed with status %d", resp.StatusCode)
	}
	resp.Body.Close()

	loginBody := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	resp = e.Do(http.MethodPost, "/api/v1/auth/login", "", loginBody)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		e.t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		e.t.Fatalf("decode login response: %v", err)
	}
	if result.Token == "" {
		e.t.Fatal("login returned an empty token")
	}
	return result.Token
}

// Do performs one request against the test server.
func (e *TestEnv) Do(method, path, token, body string) *http.Response {
	e.t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequest(method, e.Server.URL+path, reader)
	if err != nil {
		e.t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.Server.Client().Do(req)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// DecodeJSON reads and closes a response body into out.
func DecodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
