package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/grachmannico95/momo-ledger/internal/auth"
	"github.com/grachmannico95/momo-ledger/internal/config"
	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/internal/eventbus"
	"github.com/grachmannico95/momo-ledger/internal/handler"
	"github.com/grachmannico95/momo-ledger/internal/metrics"
	"github.com/grachmannico95/momo-ledger/internal/server"
	"github.com/grachmannico95/momo-ledger/internal/service"
	"github.com/grachmannico95/momo-ledger/internal/storage"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedPath = "../../data/modified_sms_v2.xml"

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.NewNop()
	ledger := storage.NewLedgerStore()
	imports := storage.NewImportStore()

	m, err := metrics.New("it")
	require.NoError(t, err)

	bus := eventbus.New(log, &eventbus.Config{
		ChannelBuffer:  100,
		MaxRetries:     3,
		RetryBaseDelay: time.Millisecond,
	})
	require.NoError(t, bus.Subscribe(eventbus.EventTypeImportCompleted, eventbus.NewImportConsumer(imports, log, 2)))
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() { bus.Shutdown(context.Background()) })

	authService := service.NewAuthService(ledger, imports, auth.NewTokenIssuer("it-secret", time.Hour), log)
	importService := service.NewImportService(imports, service.NewXMLProcessor(bus, ledger, imports, m, log), log)
	transactionService := service.NewTransactionService(ledger, m, log)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: "8080",
			Host: "0.0.0.0",
		},
	}

	srv := server.New(cfg, log, authService, server.Handlers{
		Health:      handler.NewHealthHandler(),
		Auth:        handler.NewAuthHandler(authService, log),
		Transaction: handler.NewTransactionHandler(transactionService, log),
		Import:      handler.NewImportHandler(importService, log),
		Metrics:     m.Handler(),
	})

	testServer := httptest.NewServer(srv.Handler())
	t.Cleanup(testServer.Close)

	return testServer
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, data
}

func registerAndLogin(t *testing.T, baseURL, name, email, role string, balance int) (int64, string) {
	t.Helper()

	status, data := doJSON(t, http.MethodPost, baseURL+"/auth/register", "", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
		"balance":  balance,
	})
	require.Equal(t, http.StatusCreated, status, string(data))

	var acc domain.Account
	require.NoError(t, json.Unmarshal(data, &acc))

	status, data = doJSON(t, http.MethodPost, baseURL+"/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status, string(data))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(data, &resp))

	return acc.ID, resp["access_token"]
}

func uploadXML(t *testing.T, url, token string, content []byte) string {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "sms.xml")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	return result["import_id"]
}

func waitForImport(t *testing.T, baseURL, token, importID string) domain.Import {
	t.Helper()

	var imp domain.Import
	require.Eventually(t, func() bool {
		status, data := doJSON(t, http.MethodGet, baseURL+"/imports/"+importID, token, nil)
		if status != http.StatusOK {
			return false
		}
		require.NoError(t, json.Unmarshal(data, &imp))
		return imp.Status != domain.ImportStatusProcessing
	}, 2*time.Second, 20*time.Millisecond)

	return imp
}

func TestImportFlow(t *testing.T) {
	srv := setupTestServer(t)
	_, adminToken := registerAndLogin(t, srv.URL, "Grace Admin", "admin@example.com", "ADMIN", 0)
	_, userToken := registerAndLogin(t, srv.URL, "Uwase User", "user@example.com", "USER", 0)

	content, err := os.ReadFile(seedPath)
	require.NoError(t, err)

	importID := uploadXML(t, srv.URL+"/imports", adminToken, content)
	require.NotEmpty(t, importID)

	imp := waitForImport(t, srv.URL, adminToken, importID)
	assert.Equal(t, domain.ImportStatusCompleted, imp.Status)
	assert.Equal(t, domain.ImportStats{Messages: 6, Candidates: 5, Stored: 5}, imp.Stats)

	// Trailing slash is accepted, and the sentinel is shown as the caller.
	status, data := doJSON(t, http.MethodGet, srv.URL+"/transactions/", userToken, nil)
	require.Equal(t, http.StatusOK, status)

	var txs []domain.Transaction
	require.NoError(t, json.Unmarshal(data, &txs))
	require.Len(t, txs, 5)

	assert.Equal(t, int64(76662021700), txs[0].ID)
	assert.Equal(t, "Uwase User", txs[0].Receiver)
	assert.Equal(t, int64(73214484437), txs[1].ID)
	assert.Equal(t, "Jane Smith", txs[1].Receiver)
	assert.Equal(t, int64(1), txs[2].ID)
	assert.Equal(t, "Bank Deposit", txs[2].Sender)
	assert.Equal(t, int64(2), txs[3].ID)
	assert.Equal(t, domain.TransactionTypeAirtime, txs[4].Type)

	for _, tx := range txs {
		_, linear := doJSON(t, http.MethodGet, fmt.Sprintf("%s/transactions/%d", srv.URL, tx.ID), userToken, nil)
		_, indexed := doJSON(t, http.MethodGet, fmt.Sprintf("%s/indexed_transactions/%d", srv.URL, tx.ID), userToken, nil)
		assert.JSONEq(t, string(linear), string(indexed))
	}

	status, data = doJSON(t, http.MethodGet, srv.URL+"/transactions/me", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(data, &txs))
	assert.Len(t, txs, 5)
}

func TestImportFlow_UserCannotUpload(t *testing.T) {
	srv := setupTestServer(t)
	_, userToken := registerAndLogin(t, srv.URL, "Uwase User", "user@example.com", "USER", 0)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/imports", strings.NewReader("<smses/>"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Authorization", "Bearer "+userToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestImportFlow_MalformedXML(t *testing.T) {
	srv := setupTestServer(t)
	_, adminToken := registerAndLogin(t, srv.URL, "Grace Admin", "admin@example.com", "ADMIN", 0)

	importID := uploadXML(t, srv.URL+"/imports", adminToken, []byte(`<smses><sms body="x">`))

	imp := waitForImport(t, srv.URL, adminToken, importID)
	assert.Equal(t, domain.ImportStatusFailed, imp.Status)
	assert.NotEmpty(t, imp.Error)
}

func TestTransferFlow(t *testing.T) {
	srv := setupTestServer(t)
	alice, aliceToken := registerAndLogin(t, srv.URL, "Alice", "alice@example.com", "USER", 50)
	bob, _ := registerAndLogin(t, srv.URL, "Bob", "bob@example.com", "USER", 0)
	_, adminToken := registerAndLogin(t, srv.URL, "Admin", "admin@example.com", "ADMIN", 0)

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/transactions", aliceToken, map[string]interface{}{
		"senderId": alice, "receiverId": bob, "amount": 100,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, data := doJSON(t, http.MethodPost, srv.URL+"/transactions/", aliceToken, map[string]interface{}{
		"senderId": alice, "receiverId": bob, "amount": 30, "type": "payment",
	})
	require.Equal(t, http.StatusCreated, status, string(data))

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, int64(1), created.ID)

	path := fmt.Sprintf("%s/transactions/%d", srv.URL, created.ID)

	status, _ = doJSON(t, http.MethodPut, path, aliceToken, map[string]string{"type": "deposit"})
	assert.Equal(t, http.StatusForbidden, status)

	status, data = doJSON(t, http.MethodPut, path, adminToken, map[string]string{"type": "deposit"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(data), `"type":"deposit"`)

	status, _ = doJSON(t, http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodGet, path, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuthRequired(t *testing.T) {
	srv := setupTestServer(t)

	status, _ := doJSON(t, http.MethodGet, srv.URL+"/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/transactions", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthCheck(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, "ok", result["status"])
	assert.NotEmpty(t, result["timestamp"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
