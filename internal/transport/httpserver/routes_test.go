package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-app-go/internal/config"
	financedomain "finance-app-go/internal/domain/finance"
	userdomain "finance-app-go/internal/domain/user"
	"finance-app-go/internal/repository/inmemory"
	"finance-app-go/internal/transport/httpserver/handler"
	authmw "finance-app-go/internal/transport/httpserver/middleware"
	"finance-app-go/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	aliceID = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	bobID   = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"

	usdID    = "10000000-0000-4000-8000-000000000001"
	salaryID = "20000000-0000-4000-8000-000000000001"
	foodID   = "20000000-0000-4000-8000-000000000002"
)

type tokenVerifier map[string]string

func (v tokenVerifier) Verify(_ context.Context, token string) (authmw.User, error) {
	id, ok := v[token]
	if !ok {
		return authmw.User{}, authmw.ErrInvalidToken
	}
	return authmw.User{ID: id}, nil
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := inmemory.NewFinanceRepository()
	repo.SeedCurrency(financedomain.Currency{ID: usdID, Name: "USD"})
	repo.SeedCategory(financedomain.Category{ID: salaryID, Name: "Salary", Kind: financedomain.KindIncome})
	repo.SeedCategory(financedomain.Category{ID: foodID, Name: "Food", Kind: financedomain.KindExpense})

	log := logger.NewNop()
	service := financedomain.NewServiceWithCache(repo, inmemory.NewCategoriesCache(), time.Minute)
	users := userdomain.NewService(inmemory.NewProfileRepository())
	auth := authmw.NewAuthenticatorWithVerifier(tokenVerifier{"alice": aliceID, "bob": bobID}, users, log)
	cfg := config.Config{RequestTimeout: 5 * time.Second, CORSOrigins: []string{"*"}}

	return &testServer{t: t, handler: NewRouter(cfg, handler.New(service, users, log), auth, log)}
}

func (s *testServer) do(token, method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &payload)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) expect(rec *httptest.ResponseRecorder, status int, dst any) {
	s.t.Helper()
	if rec.Code != status {
		s.t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	if dst != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
			s.t.Fatalf("decode response: %v", err)
		}
	}
}

type idResponse struct {
	ID string `json:"id"`
}

type accountBody struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

type errorBody struct {
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func (s *testServer) createAccount(token string, balance int) string {
	s.t.Helper()
	var account idResponse
	s.expect(s.do(token, http.MethodPost, "/api/finance/account", map[string]any{
		"name":        "Wallet",
		"currency_id": usdID,
		"balance":     balance,
	}), http.StatusCreated, &account)
	return account.ID
}

func (s *testServer) balance(token, accountID string) decimal.Decimal {
	s.t.Helper()
	var account accountBody
	s.expect(s.do(token, http.MethodGet, "/api/finance/account/"+accountID, nil), http.StatusOK, &account)
	return account.Balance
}

func expectDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)
	s.expect(s.do("", http.MethodGet, "/api/health", nil), http.StatusOK, nil)
	s.expect(s.do("", http.MethodGet, "/api/finance", nil), http.StatusUnauthorized, nil)

	var me struct {
		ID          string     `json:"id"`
		MemberSince *time.Time `json:"member_since"`
	}
	s.expect(s.do("alice", http.MethodGet, "/api/auth/me", nil), http.StatusOK, &me)
	if me.ID != aliceID || me.MemberSince == nil {
		t.Fatalf("expected stored profile for alice, got %+v", me)
	}
}

func TestLedgerFlow(t *testing.T) {
	s := newTestServer(t)
	accountID := s.createAccount("alice", 100)

	var income idResponse
	s.expect(s.do("alice", http.MethodPost, "/api/finance/income", map[string]any{
		"title":       "Salary",
		"amount":      "50",
		"date":        "2026-03-05",
		"category_id": salaryID,
		"account_id":  accountID,
		"company":     "ACME",
	}), http.StatusCreated, &income)
	expectDecimal(t, s.balance("alice", accountID), "150")

	var expense idResponse
	s.expect(s.do("alice", http.MethodPost, "/api/finance/expense", map[string]any{
		"title":       "Groceries",
		"amount":      30,
		"date":        "2026-03-06T10:00:00Z",
		"category_id": foodID,
		"account_id":  accountID,
	}), http.StatusCreated, &expense)
	expectDecimal(t, s.balance("alice", accountID), "120")

	var totals map[string]decimal.Decimal
	s.expect(s.do("alice", http.MethodGet, "/api/finance/account/sum", nil), http.StatusOK, &totals)
	if len(totals) != 1 {
		t.Fatalf("expected one currency, got %v", totals)
	}
	expectDecimal(t, totals["USD"], "120")

	var fetched struct {
		Company string `json:"company"`
		Amount  string `json:"amount"`
	}
	s.expect(s.do("alice", http.MethodGet, "/api/finance/income/"+income.ID, nil), http.StatusOK, &fetched)
	if fetched.Company != "ACME" {
		t.Fatalf("expected company ACME, got %q", fetched.Company)
	}

	s.expect(s.do("alice", http.MethodPut, "/api/finance/expense/"+expense.ID, map[string]any{"amount": "45"}), http.StatusOK, nil)
	expectDecimal(t, s.balance("alice", accountID), "105")

	var list struct {
		Items []idResponse `json:"items"`
		Total int64        `json:"total"`
	}
	s.expect(s.do("alice", http.MethodGet, "/api/finance/expense?start_date=2026-03-06&end_date=2026-03-06", nil), http.StatusOK, &list)
	if list.Total != 1 || len(list.Items) != 1 || list.Items[0].ID != expense.ID {
		t.Fatalf("expected the expense within the day, got %+v", list)
	}

	var overview struct {
		IncomeSum  decimal.Decimal            `json:"income_sum"`
		ExpenseSum decimal.Decimal            `json:"expense_sum"`
		AccountSum map[string]decimal.Decimal `json:"account_sum"`
	}
	s.expect(s.do("alice", http.MethodGet, "/api/finance?start_date=2026-03-01&end_date=2026-03-31", nil), http.StatusOK, &overview)
	expectDecimal(t, overview.IncomeSum, "50")
	expectDecimal(t, overview.ExpenseSum, "45")
	expectDecimal(t, overview.AccountSum["USD"], "105")

	s.expect(s.do("alice", http.MethodDelete, "/api/finance/income/"+income.ID, nil), http.StatusNoContent, nil)
	expectDecimal(t, s.balance("alice", accountID), "55")

	var errResp errorBody
	s.expect(s.do("alice", http.MethodDelete, "/api/finance/account/"+accountID, nil), http.StatusConflict, &errResp)
	if errResp.Error.Code != "account_in_use" {
		t.Fatalf("expected account_in_use, got %q", errResp.Error.Code)
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	s := newTestServer(t)
	aliceAccount := s.createAccount("alice", 100)
	bobAccount := s.createAccount("bob", 70)

	var errResp errorBody
	s.expect(s.do("alice", http.MethodPost, "/api/finance/income", map[string]any{
		"title":       "Salary",
		"amount":      "10",
		"category_id": salaryID,
		"account_id":  bobAccount,
	}), http.StatusNotFound, &errResp)
	if errResp.Error.Code != "account_not_found" {
		t.Fatalf("expected account_not_found, got %q", errResp.Error.Code)
	}
	expectDecimal(t, s.balance("alice", aliceAccount), "100")
	expectDecimal(t, s.balance("bob", bobAccount), "70")

	s.expect(s.do("alice", http.MethodGet, "/api/finance/account/"+bobAccount, nil), http.StatusNotFound, nil)

	var income idResponse
	s.expect(s.do("alice", http.MethodPost, "/api/finance/income", map[string]any{
		"title":       "Salary",
		"amount":      "10",
		"category_id": salaryID,
		"account_id":  aliceAccount,
	}), http.StatusCreated, &income)

	s.expect(s.do("bob", http.MethodGet, "/api/finance/income/"+income.ID, nil), http.StatusNotFound, nil)
	s.expect(s.do("bob", http.MethodPut, "/api/finance/income/"+income.ID, map[string]any{"title": "mine"}), http.StatusNotFound, nil)
	s.expect(s.do("bob", http.MethodDelete, "/api/finance/income/"+income.ID, nil), http.StatusNotFound, nil)
	expectDecimal(t, s.balance("alice", aliceAccount), "110")
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t)
	accountID := s.createAccount("alice", 0)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{name: "zero amount", method: http.MethodPost, path: "/api/finance/expense", body: map[string]any{"title": "x", "amount": 0, "category_id": foodID, "account_id": accountID}, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "unknown field", method: http.MethodPost, path: "/api/finance/expense", body: map[string]any{"title": "x", "amount": 1, "bogus": true}, status: http.StatusBadRequest, code: "invalid_json"},
		{name: "oversized amount", method: http.MethodPost, path: "/api/finance/expense", body: map[string]any{"title": "x", "amount": "1000000000000", "category_id": foodID, "account_id": accountID}, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "oversized opening balance", method: http.MethodPost, path: "/api/finance/account", body: map[string]any{"name": "Huge", "currency_id": usdID, "balance": "1e20"}, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "bad date", method: http.MethodPost, path: "/api/finance/expense", body: map[string]any{"title": "x", "amount": 1, "date": "yesterday", "category_id": foodID, "account_id": accountID}, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "wrong category kind", method: http.MethodPost, path: "/api/finance/expense", body: map[string]any{"title": "x", "amount": 1, "category_id": salaryID, "account_id": accountID}, status: http.StatusNotFound, code: "category_not_found"},
		{name: "bad list range", method: http.MethodGet, path: "/api/finance/income?start_date=2026-02-01&end_date=2026-01-01", status: http.StatusBadRequest, code: "invalid_request"},
		{name: "bad limit", method: http.MethodGet, path: "/api/finance/income?limit=-1", status: http.StatusBadRequest, code: "invalid_request"},
		{name: "shared category is read-only", method: http.MethodDelete, path: "/api/finance/category/" + foodID, status: http.StatusForbidden, code: "shared_read_only"},
		{name: "duplicate currency", method: http.MethodPost, path: "/api/finance/currency", body: map[string]any{"name": "usd"}, status: http.StatusConflict, code: "currency_name_taken"},
		{name: "unknown currency", method: http.MethodGet, path: "/api/finance/currency/not-an-id", status: http.StatusNotFound, code: "currency_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp errorBody
			s.expect(s.do("alice", tt.method, tt.path, tt.body), tt.status, &errResp)
			if errResp.Error.Code != tt.code {
				t.Fatalf("expected code %q, got %q", tt.code, errResp.Error.Code)
			}
		})
	}
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)

	var created struct {
		ID     string `json:"id"`
		Kind   string `json:"kind"`
		Shared bool   `json:"shared"`
	}
	s.expect(s.do("alice", http.MethodPost, "/api/finance/category", map[string]any{"name": "Freelance", "kind": "income"}), http.StatusCreated, &created)
	if created.Kind != "income" || created.Shared {
		t.Fatalf("unexpected category %+v", created)
	}

	var income []idResponse
	s.expect(s.do("alice", http.MethodGet, "/api/finance/category?kind=income", nil), http.StatusOK, &income)
	if len(income) != 2 {
		t.Fatalf("expected own and shared income categories, got %d", len(income))
	}

	var bobs []idResponse
	s.expect(s.do("bob", http.MethodGet, "/api/finance/category", nil), http.StatusOK, &bobs)
	if len(bobs) != 2 {
		t.Fatalf("expected only shared categories for bob, got %d", len(bobs))
	}

	s.expect(s.do("alice", http.MethodPatch, "/api/finance/category/"+created.ID, map[string]any{"name": "Side work"}), http.StatusOK, nil)
	s.expect(s.do("alice", http.MethodDelete, "/api/finance/category/"+created.ID, nil), http.StatusNoContent, nil)

	var currency struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	s.expect(s.do("alice", http.MethodPost, "/api/finance/currency", map[string]any{"name": "eur"}), http.StatusCreated, &currency)
	if currency.Name != "EUR" {
		t.Fatalf("expected EUR, got %q", currency.Name)
	}
	s.expect(s.do("bob", http.MethodGet, "/api/finance/currency/"+currency.ID, nil), http.StatusNotFound, nil)

	var counted struct {
		CountsTowardTotal bool `json:"counts_toward_total"`
	}
	accountID := s.createAccount("alice", 5)
	s.expect(s.do("alice", http.MethodPatch, "/api/finance/account/"+accountID, map[string]any{"counts_toward_total": false}), http.StatusOK, &counted)
	if counted.CountsTowardTotal {
		t.Fatalf("expected account excluded from totals")
	}
	var totals map[string]decimal.Decimal
	s.expect(s.do("alice", http.MethodGet, "/api/finance/account/sum", nil), http.StatusOK, &totals)
	if len(totals) != 0 {
		t.Fatalf("expected no totals, got %v", totals)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	s := newTestServer(t)
	accountID := s.createAccount("alice", 0)

	for _, amount := range []string{"12.50", "7.50"} {
		s.expect(s.do("alice", http.MethodPost, "/api/finance/expense", map[string]any{
			"title":       "Lunch",
			"amount":      amount,
			"date":        "2026-03-10",
			"category_id": foodID,
			"account_id":  accountID,
		}), http.StatusCreated, nil)
	}

	var rows []struct {
		CategoryID   string          `json:"category_id"`
		CategoryName string          `json:"category_name"`
		Total        decimal.Decimal `json:"total"`
		Count        int64           `json:"count"`
	}
	s.expect(s.do("alice", http.MethodGet, "/api/finance/expense/by-category?start_date=2026-03-01&end_date=2026-03-31", nil), http.StatusOK, &rows)
	if len(rows) != 1 || rows[0].CategoryID != foodID || rows[0].CategoryName != "Food" || rows[0].Count != 2 {
		t.Fatalf("unexpected breakdown %+v", rows)
	}
	expectDecimal(t, rows[0].Total, "20")

	s.expect(s.do("alice", http.MethodGet, "/api/finance/income/by-category?start_date=2026-03-01&end_date=2026-03-31", nil), http.StatusOK, &rows)
	if len(rows) != 0 {
		t.Fatalf("expected no income rows, got %+v", rows)
	}

	var errResp errorBody
	s.expect(s.do("alice", http.MethodGet, "/api/finance/expense/by-category?start_date=2026-04-01&end_date=2026-03-01", nil), http.StatusBadRequest, &errResp)
	if errResp.Error.Code != "invalid_request" {
		t.Fatalf("expected invalid_request, got %q", errResp.Error.Code)
	}
}
