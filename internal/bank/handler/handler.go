// Package handler exposes the bank operations over REST. Routes under
// /bank are the clerk surface, routes under /client the customer surface,
// mirroring the split of the operations between Bank and Ledger. There is
// no authentication here; callers are identified by the username in the
// path and a gateway in front is expected to enforce identity.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/message"

	"girobank/internal/bank"
)

const dateLayout = "2006-01-02"

// Handler carries the services and the locale printer used for report
// rendering.
type Handler struct {
	bank    *bank.Bank
	ledger  *bank.Ledger
	printer *message.Printer
	log     *slog.Logger
}

// New constructs a Handler.
func New(b *bank.Bank, l *bank.Ledger, printer *message.Printer, log *slog.Logger) *Handler {
	return &Handler{bank: b, ledger: l, printer: printer, log: log}
}

// Register mounts all routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/bank", func(r chi.Router) {
		r.Post("/clients", h.createClient)
		r.Get("/clients", h.listClients)
		r.Delete("/clients/{username}", h.deleteClient)
	})
	r.Route("/client/{username}", func(r chi.Router) {
		r.Post("/accounts", h.createAccount)
		r.Get("/accounts", h.accountsReport)
		r.Get("/accounts/{accountNo}", h.getAccount)
		r.Post("/deposits", h.deposit)
		r.Post("/transfers", h.transfer)
		r.Post("/managers", h.addManager)
	})
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if !decode(w, r, h.log, &req) {
		return
	}
	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "birth_date must be formatted as YYYY-MM-DD")
		return
	}
	client, err := h.bank.CreateClient(r.Context(), req.Username, birthDate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toClientResource(client))
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.bank.FindClient(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.bank.DeleteClient(r.Context(), client); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	fromBirth := r.URL.Query().Get("fromBirth")
	minBalance := r.URL.Query().Get("minBalance")

	var (
		clients []*bank.Client
		err     error
	)
	switch {
	case fromBirth != "" && minBalance != "":
		writeMessage(w, http.StatusBadRequest, "must not provide both parameters: fromBirth and minBalance")
		return
	case fromBirth != "":
		var date time.Time
		date, err = time.Parse(dateLayout, fromBirth)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "fromBirth must be formatted as YYYY-MM-DD")
			return
		}
		clients, err = h.bank.FindYoungClients(r.Context(), date)
	case minBalance != "":
		euros, parseErr := strconv.ParseFloat(minBalance, 64)
		if parseErr != nil {
			writeMessage(w, http.StatusBadRequest, "minBalance must be a decimal number")
			return
		}
		min, amountErr := bank.AmountFromEuros(euros)
		if amountErr != nil {
			h.writeError(w, r, amountErr)
			return
		}
		clients, err = h.bank.FindRichClients(r.Context(), min)
	default:
		clients, err = h.bank.FindAllClients(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResources(clients))
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	client, err := h.bank.FindClient(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req createAccountRequest
	if !decode(w, r, h.log, &req) {
		return
	}
	access, err := h.ledger.CreateAccount(r.Context(), client, req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccessResource(access))
}

func (h *Handler) accountsReport(w http.ResponseWriter, r *http.Request) {
	client, err := h.bank.FindClient(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	report, err := h.ledger.AccountsReport(r.Context(), client, h.printer)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report))
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	client, err := h.bank.FindClient(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	no, err := bank.ParseAccountNo(chi.URLParam(r, "accountNo"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	account, err := h.ledger.FindOwnAccount(r.Context(), client, no)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResource(account))
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	if _, err := h.bank.FindClient(r.Context(), chi.URLParam(r, "username")); err != nil {
		h.writeError(w, r, err)
		return
	}
	var req depositRequest
	if !decode(w, r, h.log, &req) {
		return
	}
	no, err := bank.ParseAccountNo(req.AccountNo)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	amount, err := bank.AmountFromEuros(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.ledger.Deposit(r.Context(), no, amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	client, err := h.bank.FindClient(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req transferRequest
	if !decode(w, r, h.log, &req) {
		return
	}
	sourceNo, err := bank.ParseAccountNo(req.SourceAccountNo)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	destinationNo, err := bank.ParseAccountNo(req.DestinationAccountNo)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	amount, err := bank.AmountFromEuros(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	source, err := h.ledger.FindOwnAccount(r.Context(), client, sourceNo)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.ledger.Transfer(r.Context(), client, source, destinationNo, amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResource(source))
}

func (h *Handler) addManager(w http.ResponseWriter, r *http.Request) {
	client, err := h.bank.FindClient(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req addManagerRequest
	if !decode(w, r, h.log, &req) {
		return
	}
	no, err := bank.ParseAccountNo(req.AccountNo)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	account, err := h.ledger.FindOwnAccount(r.Context(), client, no)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	manager, err := h.bank.FindClient(r.Context(), req.ManagerUsername)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	access, err := h.ledger.AddAccountManager(r.Context(), client, account, manager)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccessResource(access))
}
