package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypulse/internal/advisor"
	"moneypulse/internal/api"
	"moneypulse/internal/api/handler"
	"moneypulse/internal/category"
	"moneypulse/internal/domain"
	"moneypulse/internal/ledger"
	"moneypulse/internal/settings"
	"moneypulse/internal/transfer"
	"moneypulse/pkg/kvstore"
)

// newTestServer wires the full HTTP stack over an in-memory kvstore. Each
// test gets a fresh server, so state never leaks between tests.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	kv := kvstore.NewMemory()

	ledgerStore := ledger.NewStore(ctx, kv, logger)
	categories := category.NewRegistry(ctx, kv)
	settingsStore := settings.NewStore(ctx, kv)
	relayer := transfer.NewRelayer(0, logger)
	adv := advisor.New(ledgerStore, categories, nil, logger)

	h := handler.New(ledgerStore, categories, settingsStore, relayer, adv, "USDC", 0, logger)
	server := httptest.NewServer(api.NewRouter(h, logger))
	t.Cleanup(server.Close)
	return server
}

// makeRequest helper function: sends an HTTP request to the test server.
func makeRequest(t *testing.T, server *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(respBody)
}

func decodeMap(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

// accountByKind fetches the account of the given kind via GET /accounts.
func accountByKind(t *testing.T, server *httptest.Server, kind domain.AccountKind) map[string]interface{} {
	t.Helper()
	resp, body := makeRequest(t, server, "GET", "/accounts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, raw := range decodeMap(t, body)["accounts"].([]interface{}) {
		acc := raw.(map[string]interface{})
		if acc["kind"] == string(kind) {
			return acc
		}
	}
	t.Fatalf("no account of kind %s", kind)
	return nil
}

func balanceOf(t *testing.T, acc map[string]interface{}) decimal.Decimal {
	t.Helper()
	balance, err := decimal.NewFromString(acc["balance"].(string))
	require.NoError(t, err)
	return balance
}

func TestAppendTransactionIntegration(t *testing.T) {
	t.Run("SuccessfulExpense", func(t *testing.T) {
		server := newTestServer(t)
		cash := accountByKind(t, server, domain.AccountKindCash)
		require.True(t, balanceOf(t, cash).Equal(decimal.NewFromFloat(150.00)))

		requestBody := `{"amount": "15.50", "type": "EXPENSE", "category_id": "cat-food", "account_id": "` + cash["id"].(string) + `", "note": "Lunch"}`
		resp, body := makeRequest(t, server, "POST", "/transactions", strings.NewReader(requestBody))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		txID := decodeMap(t, body)["transaction_id"].(string)
		assert.NotEmpty(t, txID)

		// Verify the balance moved and the entry is first in the listing.
		updated := accountByKind(t, server, domain.AccountKindCash)
		assert.True(t, balanceOf(t, updated).Equal(decimal.NewFromFloat(134.50)),
			"balance = %s", updated["balance"])

		respList, bodyList := makeRequest(t, server, "GET", "/transactions", nil)
		assert.Equal(t, http.StatusOK, respList.StatusCode)
		txs := decodeMap(t, bodyList)["transactions"].([]interface{})
		require.NotEmpty(t, txs)
		assert.Equal(t, txID, txs[0].(map[string]interface{})["id"])
	})

	t.Run("OmittedOccurredAtDefaultsToNow", func(t *testing.T) {
		server := newTestServer(t)
		cash := accountByKind(t, server, domain.AccountKindCash)

		requestBody := `{"amount": "5.00", "type": "EXPENSE", "account_id": "` + cash["id"].(string) + `"}`
		resp, _ := makeRequest(t, server, "POST", "/transactions", strings.NewReader(requestBody))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		_, bodyList := makeRequest(t, server, "GET", "/transactions", nil)
		txs := decodeMap(t, bodyList)["transactions"].([]interface{})
		require.NotEmpty(t, txs)
		occurredAt, err := time.Parse(time.RFC3339, txs[0].(map[string]interface{})["occurred_at"].(string))
		require.NoError(t, err)
		assert.False(t, occurredAt.IsZero())
		assert.WithinDuration(t, time.Now(), occurredAt, time.Minute)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		server := newTestServer(t)
		cash := accountByKind(t, server, domain.AccountKindCash)

		requestBody := `{"amount": "-10.00", "type": "EXPENSE", "account_id": "` + cash["id"].(string) + `"}`
		resp, body := makeRequest(t, server, "POST", "/transactions", strings.NewReader(requestBody))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "amount must be greater than zero")
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		server := newTestServer(t)

		requestBody := `{"amount": "10.00", "type": "EXPENSE", "account_id": "no-such-account"}`
		resp, body := makeRequest(t, server, "POST", "/transactions", strings.NewReader(requestBody))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, "account not found")
	})
}

func TestGaslessTransferIntegration(t *testing.T) {
	t.Run("SuccessfulTransfer", func(t *testing.T) {
		server := newTestServer(t)
		wallet := accountByKind(t, server, domain.AccountKindChainWallet)
		require.True(t, balanceOf(t, wallet).Equal(decimal.NewFromFloat(125.00)))

		requestBody := `{"recipient": "0x456def", "amount": "50.00"}`
		resp, body := makeRequest(t, server, "POST", "/transfers/gasless", strings.NewReader(requestBody))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		responseMap := decodeMap(t, body)
		assert.Equal(t, "Transfer sent", responseMap["message"])
		assert.Len(t, responseMap["settlement_ref"].(string), 66, "0x plus 64 hex chars")
		feeSaved, err := decimal.NewFromString(responseMap["fee_saved"].(string))
		require.NoError(t, err)
		assert.True(t, feeSaved.Equal(decimal.NewFromFloat(0.0025)))

		// The ledger append follows the response; poll until it lands.
		require.Eventually(t, func() bool {
			respAcc, bodyAcc := makeRequest(t, server, "GET", "/accounts", nil)
			if respAcc.StatusCode != http.StatusOK {
				return false
			}
			for _, raw := range decodeMap(t, bodyAcc)["accounts"].([]interface{}) {
				acc := raw.(map[string]interface{})
				if acc["kind"] == string(domain.AccountKindChainWallet) {
					balance, err := decimal.NewFromString(acc["balance"].(string))
					return err == nil && balance.Equal(decimal.NewFromFloat(75.00))
				}
			}
			return false
		}, 2*time.Second, 10*time.Millisecond, "wallet balance should settle at 75.00")
	})

	t.Run("AmountExceedsWalletBalance", func(t *testing.T) {
		server := newTestServer(t)

		requestBody := `{"recipient": "0x456def", "amount": "200.00"}`
		resp, body := makeRequest(t, server, "POST", "/transfers/gasless", strings.NewReader(requestBody))

		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
		assert.Contains(t, body, "amount exceeds wallet balance")

		// The rejection never reaches the ledger.
		wallet := accountByKind(t, server, domain.AccountKindChainWallet)
		assert.True(t, balanceOf(t, wallet).Equal(decimal.NewFromFloat(125.00)))
	})

	t.Run("InvalidRecipient", func(t *testing.T) {
		server := newTestServer(t)

		requestBody := `{"recipient": "not-an-address", "amount": "10.00"}`
		resp, body := makeRequest(t, server, "POST", "/transfers/gasless", strings.NewReader(requestBody))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "transfer rejected by relayer")
	})
}

func TestCategoryDeleteIntegration(t *testing.T) {
	server := newTestServer(t)

	resp, body := makeRequest(t, server, "GET", "/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var income []map[string]interface{}
	for _, raw := range decodeMap(t, body)["categories"].([]interface{}) {
		cat := raw.(map[string]interface{})
		if cat["type"] == string(domain.TransactionTypeIncome) {
			income = append(income, cat)
		}
	}
	require.Len(t, income, 2, "seed has two income categories")

	respDel, _ := makeRequest(t, server, "DELETE", "/categories/"+income[0]["id"].(string), nil)
	assert.Equal(t, http.StatusOK, respDel.StatusCode)

	respLast, bodyLast := makeRequest(t, server, "DELETE", "/categories/"+income[1]["id"].(string), nil)
	assert.Equal(t, http.StatusConflict, respLast.StatusCode)
	assert.Contains(t, bodyLast, "cannot delete the last category of its type")
}

func TestSettingsPartialUpdateIntegration(t *testing.T) {
	server := newTestServer(t)

	requestBody := `{"currency": {"code": "EUR", "symbol": "€", "name": "Euro"}}`
	resp, body := makeRequest(t, server, "PUT", "/settings", strings.NewReader(requestBody))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Only the provided field changes; the rest keep their defaults.
	responseMap := decodeMap(t, body)
	assert.Equal(t, "EUR", responseMap["currency"].(map[string]interface{})["code"])
	assert.Equal(t, string(domain.WeekStartSunday), responseMap["week_start"])
	assert.Equal(t, true, responseMap["dark_mode"])

	respGet, bodyGet := makeRequest(t, server, "GET", "/settings", nil)
	assert.Equal(t, http.StatusOK, respGet.StatusCode)
	assert.Equal(t, "EUR", decodeMap(t, bodyGet)["currency"].(map[string]interface{})["code"])
}

func TestAdvisorUnavailableIntegration(t *testing.T) {
	server := newTestServer(t)

	requestBody := `{"message": "How much did I spend?"}`
	resp, body := makeRequest(t, server, "POST", "/advisor/chat", strings.NewReader(requestBody))

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "financial advisor is unavailable")
}
