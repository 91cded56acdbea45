package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type createClientRequest struct {
	Username  string `json:"username"`
	BirthDate string `json:"birth_date"`
}

type createAccountRequest struct {
	Name string `json:"name"`
}

type depositRequest struct {
	AccountNo string  `json:"account_no"`
	Amount    float64 `json:"amount"`
}

type transferRequest struct {
	SourceAccountNo      string  `json:"source_account_no"`
	DestinationAccountNo string  `json:"destination_account_no"`
	Amount               float64 `json:"amount"`
}

type addManagerRequest struct {
	AccountNo       string `json:"account_no"`
	ManagerUsername string `json:"manager_username"`
}

// decode reads the JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.DebugContext(r.Context(), "bad request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
