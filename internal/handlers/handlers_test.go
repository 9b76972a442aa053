package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jewelmj/splitsmart/internal/service"
	"github.com/jewelmj/splitsmart/internal/storage/jsonfile"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return NewRouter(service.NewUserService(store), service.NewGroupService(store))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

func createUserID(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/users", gin.H{"name": name, "email": email})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create user status = %d, body = %s", w.Code, w.Body.String())
	}
	var user struct {
		ID string `json:"id"`
	}
	decode(t, w, &user)
	return user.ID
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", w.Code)
	}
}

func TestUserEndpoints(t *testing.T) {
	router := newTestRouter(t)

	id := createUserID(t, router, "Alice", "alice@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/v1/users/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get user status = %d, body = %s", w.Code, w.Body.String())
	}
	var user struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	decode(t, w, &user)
	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Errorf("User mismatch: %+v", user)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Missing user status = %d, want 404", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/users", gin.H{"name": "Bad", "email": "not-an-email"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Bad email status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/users", gin.H{"name": "Dup", "email": "alice@example.com"})
	if w.Code != http.StatusConflict {
		t.Errorf("Duplicate email status = %d, want 409", w.Code)
	}
}

func TestGroupExpenseDebtFlow(t *testing.T) {
	router := newTestRouter(t)

	aliceID := createUserID(t, router, "Alice", "alice@example.com")
	bobID := createUserID(t, router, "Bob", "bob@example.com")
	carolID := createUserID(t, router, "Carol", "carol@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/groups", gin.H{
		"name":       "Apartment",
		"member_ids": []string{aliceID, bobID, carolID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create group status = %d, body = %s", w.Code, w.Body.String())
	}
	var group struct {
		ID string `json:"id"`
	}
	decode(t, w, &group)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/expenses", group.ID), gin.H{
		"description": "Groceries",
		"amount":      90,
		"payer_id":    aliceID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Add expense status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%s/debts", group.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get debts status = %d, body = %s", w.Code, w.Body.String())
	}
	var debtsResp struct {
		Debts []struct {
			BorrowerID string  `json:"borrower_id"`
			LenderID   string  `json:"lender_id"`
			Amount     float64 `json:"amount"`
		} `json:"debts"`
	}
	decode(t, w, &debtsResp)
	if len(debtsResp.Debts) != 2 {
		t.Fatalf("Debts count mismatch: %+v", debtsResp.Debts)
	}
	for _, d := range debtsResp.Debts {
		if d.LenderID != aliceID || math.Abs(d.Amount-30) > 0.01 {
			t.Errorf("Unexpected debt: %+v", d)
		}
	}

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/settlements", group.ID), gin.H{
		"payer_id":     bobID,
		"recipient_id": aliceID,
		"amount":       30,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Settle up status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%s/debts", group.ID), nil)
	decode(t, w, &debtsResp)
	if len(debtsResp.Debts) != 1 || debtsResp.Debts[0].BorrowerID != carolID {
		t.Errorf("Debts after settlement mismatch: %+v", debtsResp.Debts)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%s/balances", group.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get balances status = %d, body = %s", w.Code, w.Body.String())
	}
	var balancesResp struct {
		Balances map[string]float64 `json:"balances"`
	}
	decode(t, w, &balancesResp)
	if math.Abs(balancesResp.Balances[aliceID]-30) > 0.01 {
		t.Errorf("Alice balance = %.2f, want 30.00", balancesResp.Balances[aliceID])
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%s/summary", group.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get summary status = %d, body = %s", w.Code, w.Body.String())
	}
	var summary struct {
		GroupName     string  `json:"group_name"`
		ExpenseCount  int     `json:"expense_count"`
		TotalExpenses float64 `json:"total_expenses"`
	}
	decode(t, w, &summary)
	if summary.GroupName != "Apartment" || summary.ExpenseCount != 1 || math.Abs(summary.TotalExpenses-90) > 0.01 {
		t.Errorf("Summary mismatch: %+v", summary)
	}
}

func TestExpenseRejections(t *testing.T) {
	router := newTestRouter(t)

	aliceID := createUserID(t, router, "Alice", "alice@example.com")
	bobID := createUserID(t, router, "Bob", "bob@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/groups", gin.H{
		"name":       "Pair",
		"member_ids": []string{aliceID, bobID},
	})
	var group struct {
		ID string `json:"id"`
	}
	decode(t, w, &group)

	// Binding rejects non-positive amounts before the service sees them.
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/expenses", group.ID), gin.H{
		"description": "Dinner",
		"amount":      -5,
		"payer_id":    aliceID,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Negative amount status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/expenses", group.ID), gin.H{
		"description": "Dinner",
		"amount":      50,
		"payer_id":    aliceID,
		"split_type":  "PERCENTAGE",
		"percentages": map[string]float64{aliceID: 60, bobID: 30},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Bad percentages status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/expenses", group.ID), gin.H{
		"description": "Dinner",
		"amount":      50,
		"payer_id":    aliceID,
		"split_type":  "THIRDS",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Unknown split type status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/groups/missing/debts", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Missing group status = %d, want 404", w.Code)
	}
}
