package httpadapter

import "net/http"

type balanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// handleAccountBalance reports the funds credited to an account by
// finalized requests.
func (h *Handler) handleAccountBalance(w http.ResponseWriter, r *http.Request) {
	account, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	bal, err := h.svc.AccountBalance(r.Context(), account)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Address: account.Hex(), Balance: bal.String()})
}
