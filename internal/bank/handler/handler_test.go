package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"girobank/internal/bank"
	"girobank/internal/bank/store/memory"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	clients := memory.NewClientStore()
	accounts := memory.NewAccountStore()
	accesses := memory.NewAccessStore()
	runner := memory.NewTxRunner()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	bankSvc := bank.NewBank(clients, accesses, runner, bank.WithBankLogger(log))
	ledger := bank.NewLedger(accounts, accesses, runner, bank.WithLedgerLogger(log))

	h := New(bankSvc, ledger, message.NewPrinter(language.English), log)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}

func createClient(t *testing.T, router http.Handler, username, birthDate string) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/bank/clients",
		`{"username":"`+username+`","birth_date":"`+birthDate+`"}`)
	mustStatus(t, rec, http.StatusCreated)
}

func createAccount(t *testing.T, router http.Handler, username, name string) string {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/client/"+username+"/accounts",
		`{"name":"`+name+`"}`)
	mustStatus(t, rec, http.StatusCreated)
	var resp struct {
		Account struct {
			AccountNo string `json:"account_no"`
		} `json:"account"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Account.AccountNo
}

func deposit(t *testing.T, router http.Handler, username, accountNo string, amount string) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/client/"+username+"/deposits",
		`{"account_no":"`+accountNo+`","amount":`+amount+`}`)
	mustStatus(t, rec, http.StatusNoContent)
}

func TestCreateClient(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/bank/clients",
		`{"username":"jack","birth_date":"1966-12-31"}`)
	mustStatus(t, rec, http.StatusCreated)

	var resp struct {
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		BirthDate string `json:"birth_date"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "jack", resp.Username)
	assert.Equal(t, "1966-12-31", resp.BirthDate)
}

func TestCreateClientValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/bank/clients",
		`{"username":"9jack","birth_date":"1966-12-31"}`)
	mustStatus(t, rec, http.StatusBadRequest)

	rec = do(t, router, http.MethodPost, "/bank/clients",
		`{"username":"jack","birth_date":"31.12.1966"}`)
	mustStatus(t, rec, http.StatusBadRequest)

	rec = do(t, router, http.MethodPost, "/bank/clients", `{not json`)
	mustStatus(t, rec, http.StatusBadRequest)
}

func TestCreateClientDuplicateUsername(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")

	// The unique-username conflict is an infrastructure error here, not a
	// typed domain error, so it surfaces opaquely.
	rec := do(t, router, http.MethodPost, "/bank/clients",
		`{"username":"jack","birth_date":"1970-01-01"}`)
	mustStatus(t, rec, http.StatusInternalServerError)
}

func TestListClients(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")
	createClient(t, router, "chloe", "1992-03-15")

	rec := do(t, router, http.MethodGet, "/bank/clients", "")
	mustStatus(t, rec, http.StatusOK)

	var resp []struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "chloe", resp[0].Username)
	assert.Equal(t, "jack", resp[1].Username)
}

func TestListClientsFilters(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")
	createClient(t, router, "chloe", "1992-03-15")
	giro := createAccount(t, router, "chloe", "Giro")
	deposit(t, router, "chloe", giro, "2000")

	t.Run("fromBirth", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/bank/clients?fromBirth=1990-01-01", "")
		mustStatus(t, rec, http.StatusOK)
		var resp []struct {
			Username string `json:"username"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "chloe", resp[0].Username)
	})

	t.Run("minBalance", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/bank/clients?minBalance=1000", "")
		mustStatus(t, rec, http.StatusOK)
		var resp []struct {
			Username string `json:"username"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "chloe", resp[0].Username)
	})

	t.Run("both filters refused", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/bank/clients?fromBirth=1990-01-01&minBalance=1000", "")
		mustStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("bad minBalance", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/bank/clients?minBalance=lots", "")
		mustStatus(t, rec, http.StatusBadRequest)
	})
}

func TestDeleteClient(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")

	mustStatus(t, do(t, router, http.MethodDelete, "/bank/clients/jack", ""), http.StatusNoContent)
	mustStatus(t, do(t, router, http.MethodDelete, "/bank/clients/jack", ""), http.StatusNotFound)
}

func TestDeleteClientStillOwningAnAccount(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")
	createAccount(t, router, "jack", "Giro")

	mustStatus(t, do(t, router, http.MethodDelete, "/bank/clients/jack", ""), http.StatusConflict)
}

func TestCreateAccount(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")

	rec := do(t, router, http.MethodPost, "/client/jack/accounts", `{"name":"Giro"}`)
	mustStatus(t, rec, http.StatusCreated)

	var resp struct {
		Username string `json:"username"`
		IsOwner  bool   `json:"is_owner"`
		Account  struct {
			AccountNo string  `json:"account_no"`
			Name      string  `json:"name"`
			Balance   float64 `json:"balance"`
		} `json:"account"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jack", resp.Username)
	assert.True(t, resp.IsOwner)
	assert.Equal(t, "1", resp.Account.AccountNo)
	assert.Equal(t, "Giro", resp.Account.Name)
	assert.Zero(t, resp.Account.Balance)

	mustStatus(t, do(t, router, http.MethodPost, "/client/nobody/accounts", `{"name":"Giro"}`),
		http.StatusNotFound)
}

func TestGetAccount(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")
	createClient(t, router, "chloe", "1992-03-15")
	giro := createAccount(t, router, "jack", "Giro")
	deposit(t, router, "jack", giro, "123.45")

	rec := do(t, router, http.MethodGet, "/client/jack/accounts/"+giro, "")
	mustStatus(t, rec, http.StatusOK)
	var resp struct {
		Balance float64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 123.45, resp.Balance, 0.001)

	// Chloe has no grant on the account, so for her it does not exist.
	mustStatus(t, do(t, router, http.MethodGet, "/client/chloe/accounts/"+giro, ""),
		http.StatusNotFound)

	mustStatus(t, do(t, router, http.MethodGet, "/client/jack/accounts/nope", ""),
		http.StatusBadRequest)
}

func TestDeposit(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")
	createClient(t, router, "chloe", "1992-03-15")
	giro := createAccount(t, router, "jack", "Giro")

	// Depositing requires no grant on the destination.
	rec := do(t, router, http.MethodPost, "/client/chloe/deposits",
		`{"account_no":"`+giro+`","amount":999999999.99}`)
	mustStatus(t, rec, http.StatusNoContent)

	rec = do(t, router, http.MethodGet, "/client/jack/accounts/"+giro, "")
	mustStatus(t, rec, http.StatusOK)
	var resp struct {
		Balance float64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 999999999.99, resp.Balance, 0.001)

	t.Run("non-positive amount", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/client/jack/deposits",
			`{"account_no":"`+giro+`","amount":0}`)
		mustStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("unknown destination", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/client/jack/deposits",
			`{"account_no":"999","amount":10}`)
		mustStatus(t, rec, http.StatusNotFound)
	})
}

func TestTransfer(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")
	createClient(t, router, "chloe", "1992-03-15")
	giro := createAccount(t, router, "jack", "Giro")
	savings := createAccount(t, router, "jack", "Savings")
	deposit(t, router, "jack", giro, "500")

	rec := do(t, router, http.MethodPost, "/client/jack/transfers",
		`{"source_account_no":"`+giro+`","destination_account_no":"`+savings+`","amount":1500}`)
	mustStatus(t, rec, http.StatusOK)

	var resp struct {
		Balance float64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, -1000.0, resp.Balance, 0.001)

	t.Run("below the minimum balance", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/client/jack/transfers",
			`{"source_account_no":"`+giro+`","destination_account_no":"`+savings+`","amount":0.01}`)
		mustStatus(t, rec, http.StatusConflict)
	})

	t.Run("source not managed by the sender", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/client/chloe/transfers",
			`{"source_account_no":"`+giro+`","destination_account_no":"`+savings+`","amount":10}`)
		mustStatus(t, rec, http.StatusNotFound)
	})
}

func TestAddManager(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")
	createClient(t, router, "chloe", "1992-03-15")
	createClient(t, router, "tony", "1988-07-01")
	giro := createAccount(t, router, "jack", "Giro")
	savings := createAccount(t, router, "chloe", "Savings")
	deposit(t, router, "jack", giro, "100")

	rec := do(t, router, http.MethodPost, "/client/jack/managers",
		`{"account_no":"`+giro+`","manager_username":"chloe"}`)
	mustStatus(t, rec, http.StatusCreated)
	var resp struct {
		Username string `json:"username"`
		IsOwner  bool   `json:"is_owner"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "chloe", resp.Username)
	assert.False(t, resp.IsOwner)

	// Chloe may now move money out of Jack's account.
	rec = do(t, router, http.MethodPost, "/client/chloe/transfers",
		`{"source_account_no":"`+giro+`","destination_account_no":"`+savings+`","amount":10}`)
	mustStatus(t, rec, http.StatusOK)

	t.Run("second grant refused", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/client/jack/managers",
			`{"account_no":"`+giro+`","manager_username":"chloe"}`)
		mustStatus(t, rec, http.StatusConflict)
	})

	t.Run("manager may not grant", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/client/chloe/managers",
			`{"account_no":"`+giro+`","manager_username":"tony"}`)
		mustStatus(t, rec, http.StatusForbidden)
	})

	t.Run("unknown manager", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/client/jack/managers",
			`{"account_no":"`+giro+`","manager_username":"nobody"}`)
		mustStatus(t, rec, http.StatusNotFound)
	})
}

func TestAccountsReport(t *testing.T) {
	router := newTestRouter(t)
	createClient(t, router, "jack", "1966-12-31")
	giro := createAccount(t, router, "jack", "Giro")
	createAccount(t, router, "jack", "Savings")
	deposit(t, router, "jack", giro, "1234.56")

	rec := do(t, router, http.MethodGet, "/client/jack/accounts", "")
	mustStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	expected := "Accounts of client: jack\n" +
		"2\tisOwner\t0.00\tSavings\n" +
		"1\tisOwner\t1,234.56\tGiro\n"
	assert.Equal(t, expected, rec.Body.String())
}
