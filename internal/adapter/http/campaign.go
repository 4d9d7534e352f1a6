package httpadapter

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"crowdfund/internal/core/domain"
)

type createCampaignRequest struct {
	Minimum string `json:"minimum"`
}

type addressResponse struct {
	Address string `json:"address"`
}

type campaignsResponse struct {
	Campaigns []string `json:"campaigns"`
}

type summaryResponse struct {
	Address             string `json:"address"`
	Manager             string `json:"manager"`
	MinimumContribution string `json:"minimumContribution"`
	Balance             string `json:"balance"`
	RequestsCount       int    `json:"requestsCount"`
	ApproversCount      int    `json:"approversCount"`
}

type approverResponse struct {
	Identity string `json:"identity"`
	Approver bool   `json:"approver"`
}

type contributeRequest struct {
	Amount string `json:"amount"`
}

// handleCreateCampaign deploys a campaign managed by the caller and
// returns its address with 201 Created.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	minimum, err := domain.ParseAmount(req.Minimum)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	addr, err := h.svc.CreateCampaign(r.Context(), minimum)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, addressResponse{Address: addr.Hex()})
}

func (h *Handler) handleDeployedCampaigns(w http.ResponseWriter, r *http.Request) {
	deployed, err := h.svc.DeployedCampaigns(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := campaignsResponse{Campaigns: make([]string, 0, len(deployed))}
	for _, a := range deployed {
		resp.Campaigns = append(resp.Campaigns, a.Hex())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	campaign, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.svc.Summary(r.Context(), campaign)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Address:             s.Address.Hex(),
		Manager:             s.Manager.Hex(),
		MinimumContribution: s.MinimumContribution.String(),
		Balance:             s.Balance.String(),
		RequestsCount:       s.RequestsCount,
		ApproversCount:      s.ApproversCount,
	})
}

func (h *Handler) handleManager(w http.ResponseWriter, r *http.Request) {
	campaign, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	manager, err := h.svc.Manager(r.Context(), campaign)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"manager": manager.Hex()})
}

func (h *Handler) handleApprover(w http.ResponseWriter, r *http.Request) {
	campaign, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	who, err := addressParam(r, "identity")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ok, err := h.svc.IsApprover(r.Context(), campaign, who)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, approverResponse{Identity: who.Hex(), Approver: ok})
}

// handleContribute adds the caller's contribution to the pool. It replies
// 204 No Content on success.
func (h *Handler) handleContribute(w http.ResponseWriter, r *http.Request) {
	campaign, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req contributeRequest
	if err = decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.svc.Contribute(r.Context(), campaign, amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func addressParam(r *http.Request, name string) (common.Address, error) {
	return domain.ParseAddress(chi.URLParam(r, name))
}
