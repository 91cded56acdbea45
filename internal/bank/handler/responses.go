package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"girobank/internal/bank"
)

type clientResource struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	BirthDate string `json:"birth_date"`
}

type accountResource struct {
	AccountNo string  `json:"account_no"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
}

type accessResource struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	IsOwner  bool            `json:"is_owner"`
	Account  accountResource `json:"account"`
}

func toClientResource(c *bank.Client) clientResource {
	return clientResource{
		ID:        c.ID(),
		Username:  c.Username(),
		BirthDate: c.BirthDate().Format(dateLayout),
	}
}

func toClientResources(clients []*bank.Client) []clientResource {
	resources := make([]clientResource, 0, len(clients))
	for _, c := range clients {
		resources = append(resources, toClientResource(c))
	}
	return resources
}

func toAccountResource(a *bank.Account) accountResource {
	no, _ := a.AccountNo()
	return accountResource{
		AccountNo: no.String(),
		Name:      a.Name(),
		Balance:   a.Balance().Euros(),
	}
}

func toAccessResource(aa *bank.AccountAccess) accessResource {
	return accessResource{
		ID:       aa.ID(),
		Username: aa.Client().Username(),
		IsOwner:  aa.IsOwner(),
		Account:  toAccountResource(aa.Account()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps the typed domain errors onto HTTP statuses. Anything not
// in the taxonomy is an infrastructure failure and stays opaque to the
// caller.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "internal error", "error", err)
		writeMessage(w, status, "internal error")
		return
	}
	writeMessage(w, status, err.Error())
}

func statusFor(err error) int {
	var (
		amountErr    bank.AmountError
		rangeErr     bank.RangeError
		accountNoErr bank.InvalidAccountNoError
		usernameErr  bank.UsernameError

		clientNotFound  bank.ClientNotFoundError
		destNotFound    bank.DestinationNotFoundError
		notManaged      bank.NotManagedAccountError
		withoutRight    bank.WithoutRightError
		notOwner        bank.NotOwnerError
		doubleManager   bank.DoubleManagerError
		stillOwner      bank.StillOwnerError
		belowMinimum    bank.BelowMinimumBalanceError
		depositFailed   bank.DepositFailedError
	)
	switch {
	case errors.As(err, &amountErr),
		errors.As(err, &rangeErr),
		errors.As(err, &accountNoErr),
		errors.As(err, &usernameErr):
		return http.StatusBadRequest
	case errors.As(err, &clientNotFound),
		errors.As(err, &destNotFound),
		errors.As(err, &notManaged):
		return http.StatusNotFound
	case errors.As(err, &withoutRight),
		errors.As(err, &notOwner):
		return http.StatusForbidden
	case errors.As(err, &doubleManager),
		errors.As(err, &stillOwner),
		errors.As(err, &belowMinimum):
		return http.StatusConflict
	case errors.As(err, &depositFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
