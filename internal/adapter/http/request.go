package httpadapter

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

type createRequestRequest struct {
	Description string `json:"description"`
	Value       string `json:"value"`
	Recipient   string `json:"recipient"`
}

type indexResponse struct {
	Index int `json:"index"`
}

type requestResponse struct {
	Index         int    `json:"index"`
	Description   string `json:"description"`
	Value         string `json:"value"`
	Recipient     string `json:"recipient"`
	Complete      bool   `json:"complete"`
	ApprovalCount int    `json:"approvalCount"`
}

type requestsResponse struct {
	Requests []requestResponse `json:"requests"`
}

func toRequestResponse(req *domain.SpendingRequest) requestResponse {
	return requestResponse{
		Index:         req.Index,
		Description:   req.Description,
		Value:         req.Value.String(),
		Recipient:     req.Recipient.Hex(),
		Complete:      req.Complete,
		ApprovalCount: req.ApprovalCount,
	}
}

// handleCreateRequest appends a spending request on behalf of the manager
// and returns its index with 201 Created.
func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	campaign, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req createRequestRequest
	if err = decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	value, err := domain.ParseAmount(req.Value)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	recipient, err := domain.ParseAddress(req.Recipient)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	idx, err := h.svc.CreateRequest(r.Context(), campaign, port.CreateRequestInput{
		Description: req.Description,
		Value:       value,
		Recipient:   recipient,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, indexResponse{Index: idx})
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	campaign, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	reqs, err := h.svc.Requests(r.Context(), campaign)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := requestsResponse{Requests: make([]requestResponse, 0, len(reqs))}
	for _, req := range reqs {
		resp.Requests = append(resp.Requests, toRequestResponse(req))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	campaign, idx, err := requestParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := h.svc.Request(r.Context(), campaign, idx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	campaign, idx, err := requestParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.svc.ApproveRequest(r.Context(), campaign, idx); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleFinalizeRequest(w http.ResponseWriter, r *http.Request) {
	campaign, idx, err := requestParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.svc.FinalizeRequest(r.Context(), campaign, idx); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requestParams(r *http.Request) (campaign common.Address, idx int, err error) {
	campaign, err = addressParam(r, "address")
	if err != nil {
		return campaign, 0, err
	}
	idx, err = strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return campaign, 0, domain.Errorf(domain.CodeInvalidArgument, "invalid request index %q", chi.URLParam(r, "index"))
	}
	return campaign, idx, nil
}
