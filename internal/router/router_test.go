package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverma16/splitbill/internal/auth"
	"github.com/mverma16/splitbill/internal/config"
	"github.com/mverma16/splitbill/internal/service"
	"github.com/mverma16/splitbill/internal/storage/sqlite"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		ServerPort:    "0",
		UploadDir:     t.TempDir(),
		MaxUploadSize: 1 << 20,
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
	contactSvc := service.NewContactService(store)
	billSvc := service.NewBillService(store, nil)

	return New(cfg, authSvc, contactSvc, billSvc, jwtManager)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/auth/register", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, ok := decode(t, w)["token"].(string)
	require.True(t, ok)
	return token
}

func TestHealth(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	engine := newTestEngine(t)

	token := registerUser(t, engine, "ravi")
	assert.NotEmpty(t, token)

	w := doJSON(t, engine, http.MethodPost, "/auth/login", "", gin.H{
		"username": "ravi",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "ravi", resp["username"])
	assert.Equal(t, false, resp["is_admin"])

	w = doJSON(t, engine, http.MethodPost, "/auth/login", "", gin.H{
		"username": "ravi",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/bills", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/bills", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillLifecycle(t *testing.T) {
	engine := newTestEngine(t)
	token := registerUser(t, engine, "priya")

	// Create two contacts.
	contactIDs := make([]string, 0, 2)
	for _, name := range []string{"Amit", "Neha"} {
		w := doJSON(t, engine, http.MethodPost, "/contacts", token, gin.H{
			"name":            name,
			"whatsapp_number": "9876543210",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		id, ok := decode(t, w)["id"].(string)
		require.True(t, ok)
		contactIDs = append(contactIDs, id)
	}

	// Record a bill; the server derives the total.
	w := doJSON(t, engine, http.MethodPost, "/bills", token, gin.H{
		"restaurant_name": "Spice Garden",
		"visit_date":      "2025-07-14",
		"base_amount":     30.0,
		"tax_amount":      10.0,
		"service_charge":  5.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bill := decode(t, w)
	billID, ok := bill["id"].(string)
	require.True(t, ok)
	assert.InDelta(t, 45.0, bill["total_amount"].(float64), 1e-9)

	// Split it between the two contacts.
	w = doJSON(t, engine, http.MethodPost, "/bills/"+billID+"/split", token, gin.H{
		"assignments": []gin.H{
			{"contact_id": contactIDs[0], "food_item": "Paneer Tikka", "food_amount": 20.0},
			{"contact_id": contactIDs[1], "food_item": "Dal Makhani", "food_amount": 10.0},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	split := decode(t, w)
	shares, ok := split["shares"].([]any)
	require.True(t, ok)
	require.Len(t, shares, 2)
	first := shares[0].(map[string]any)
	assert.Equal(t, "Amit", first["contact_name"])
	assert.InDelta(t, 27.5, first["total_share"].(float64), 1e-9)
	assert.Contains(t, split["csv"], "Spice Garden")

	// CSV export download.
	w = doJSON(t, engine, http.MethodGet, "/bills/"+billID+"/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bill_share_")
	assert.Contains(t, w.Body.String(), "Bill Sharing Details")

	// Group and individual messages.
	w = doJSON(t, engine, http.MethodGet, "/bills/"+billID+"/message", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["message"], "Spice Garden")

	w = doJSON(t, engine, http.MethodGet, "/bills/"+billID+"/message/"+contactIDs[1], token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	individual := decode(t, w)
	assert.Contains(t, individual["message"], "Neha")
	assert.True(t, strings.HasPrefix(individual["whatsapp_url"].(string), "https://wa.me/"))

	// Dashboard reflects the bill.
	w = doJSON(t, engine, http.MethodGet, "/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode(t, w)
	assert.InDelta(t, 2, dash["total_contacts"].(float64), 1e-9)
	assert.InDelta(t, 45.0, dash["total_spending"].(float64), 1e-9)

	// Delete removes the bill and its shares.
	w = doJSON(t, engine, http.MethodDelete, "/bills/"+billID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/bills/"+billID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSplitRejectsUnknownContact(t *testing.T) {
	engine := newTestEngine(t)
	token := registerUser(t, engine, "vikas")

	w := doJSON(t, engine, http.MethodPost, "/bills", token, gin.H{
		"restaurant_name": "Cafe Azul",
		"visit_date":      "2025-08-01",
		"base_amount":     12.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	billID := decode(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/bills/"+billID+"/split", token, gin.H{
		"assignments": []gin.H{
			{"contact_id": "no-such-contact", "food_item": "Tapas", "food_amount": 12.0},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillsAreOwnerScoped(t *testing.T) {
	engine := newTestEngine(t)
	ownerToken := registerUser(t, engine, "owner")
	otherToken := registerUser(t, engine, "other")

	w := doJSON(t, engine, http.MethodPost, "/bills", ownerToken, gin.H{
		"restaurant_name": "Private Diner",
		"visit_date":      "2025-06-02",
		"base_amount":     50.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	billID := decode(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodGet, "/bills/"+billID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBillValidation(t *testing.T) {
	engine := newTestEngine(t)
	token := registerUser(t, engine, "sneha")

	for _, body := range []gin.H{
		{},
		{"restaurant_name": "X", "visit_date": "2025-01-01"},
		{"restaurant_name": "X", "visit_date": "2025-01-01", "base_amount": -5.0},
	} {
		w := doJSON(t, engine, http.MethodPost, "/bills", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}
