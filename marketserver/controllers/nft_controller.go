package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	core "github.com/epam/mintgate/core"
	"github.com/epam/mintgate/marketserver/services"
)

// CallerHeader names the account a write request runs as. The gateway
// trusts its upstream authentication layer for this value.
const CallerHeader = "X-Mintgate-Caller"

// NftController provides HTTP handlers over the contract surface.
type NftController struct {
	svc *services.NftService
}

func NewNftController(svc *services.NftService) *NftController {
	return &NftController{svc: svc}
}

func (nc *NftController) caller(r *http.Request) (core.AccountId, bool) {
	caller := core.AccountId(r.Header.Get(CallerHeader))
	return caller, caller != ""
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (nc *NftController) Metadata(w http.ResponseWriter, r *http.Request) {
	md, err := nc.svc.Views().NftMetadata()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, md)
}

func (nc *NftController) Tokens(w http.ResponseWriter, r *http.Request) {
	var from *uint64
	var limit *uint32
	if v := r.URL.Query().Get("from"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		from = &n
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		l := uint32(n)
		limit = &l
	}
	tokens, err := nc.svc.Views().NftTokens(from, limit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, tokens)
}

func (nc *NftController) Token(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	token, err := nc.svc.Views().NftToken(core.TokenId(id))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if token == nil {
		http.Error(w, "token not found", 404)
		return
	}
	writeJSON(w, token)
}

func (nc *NftController) TokenURI(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	uri, err := nc.svc.Views().NftTokenURI(core.TokenId(id))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if uri == nil {
		http.Error(w, "no token URI", 404)
		return
	}
	writeJSON(w, map[string]string{"uri": *uri})
}

func (nc *NftController) TokensForOwner(w http.ResponseWriter, r *http.Request) {
	owner := core.AccountId(mux.Vars(r)["account"])
	tokens, err := nc.svc.Views().GetTokensByOwner(owner)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, tokens)
}

func (nc *NftController) Collectible(w http.ResponseWriter, r *http.Request) {
	gateID := core.GateId(mux.Vars(r)["gate_id"])
	col, err := nc.svc.Views().GetCollectibleByGateID(gateID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if col == nil {
		http.Error(w, "collectible not found", 404)
		return
	}
	writeJSON(w, col)
}

func (nc *NftController) CollectiblesByCreator(w http.ResponseWriter, r *http.Request) {
	creator := core.AccountId(mux.Vars(r)["account"])
	cols, err := nc.svc.Views().GetCollectiblesByCreator(creator)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, cols)
}

func (nc *NftController) Payout(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	balance, err := core.ParseBalance(r.URL.Query().Get("balance"))
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	payout, err := nc.svc.Views().NftPayout(core.TokenId(id), balance)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, payout)
}

func (nc *NftController) CreateCollectible(w http.ResponseWriter, r *http.Request) {
	caller, ok := nc.caller(r)
	if !ok {
		http.Error(w, "missing "+CallerHeader+" header", 401)
		return
	}
	var req struct {
		Creator       string  `json:"creator"`
		GateID        string  `json:"gate_id"`
		Title         string  `json:"title"`
		Description   string  `json:"description"`
		Supply        uint16  `json:"supply"`
		Royalty       string  `json:"royalty"`
		Media         *string `json:"media"`
		MediaHash     *string `json:"media_hash"`
		Reference     *string `json:"reference"`
		ReferenceHash *string `json:"reference_hash"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	royalty, err := core.ParseFraction(req.Royalty)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	err = nc.svc.As(caller).CreateCollectible(
		core.AccountId(req.Creator), core.GateId(req.GateID),
		req.Title, req.Description, req.Supply, royalty,
		req.Media, req.MediaHash, req.Reference, req.ReferenceHash,
	)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, map[string]string{"gate_id": req.GateID})
}

func (nc *NftController) Claim(w http.ResponseWriter, r *http.Request) {
	caller, ok := nc.caller(r)
	if !ok {
		http.Error(w, "missing "+CallerHeader+" header", 401)
		return
	}
	var req struct {
		GateID string `json:"gate_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	tokenID, err := nc.svc.As(caller).ClaimToken(core.GateId(req.GateID))
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, map[string]uint64{"token_id": uint64(tokenID)})
}

func (nc *NftController) Transfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := nc.caller(r)
	if !ok {
		http.Error(w, "missing "+CallerHeader+" header", 401)
		return
	}
	var req struct {
		Receiver   string  `json:"receiver"`
		TokenID    uint64  `json:"token_id"`
		ApprovalID *uint64 `json:"approval_id"`
		Memo       *string `json:"memo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	err := nc.svc.As(caller).NftTransfer(
		core.AccountId(req.Receiver), core.TokenId(req.TokenID), req.ApprovalID, req.Memo)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (nc *NftController) Approve(w http.ResponseWriter, r *http.Request) {
	caller, ok := nc.caller(r)
	if !ok {
		http.Error(w, "missing "+CallerHeader+" header", 401)
		return
	}
	var req struct {
		TokenID  uint64 `json:"token_id"`
		Account  string `json:"account"`
		MinPrice string `json:"min_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	msgRaw, err := json.Marshal(map[string]string{"min_price": req.MinPrice})
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	msg := string(msgRaw)
	err = nc.svc.As(caller).NftApprove(core.TokenId(req.TokenID), core.AccountId(req.Account), &msg)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (nc *NftController) Revoke(w http.ResponseWriter, r *http.Request) {
	caller, ok := nc.caller(r)
	if !ok {
		http.Error(w, "missing "+CallerHeader+" header", 401)
		return
	}
	var req struct {
		TokenID uint64 `json:"token_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if err := nc.svc.As(caller).NftRevokeAll(core.TokenId(req.TokenID)); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (nc *NftController) ListToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TokenID uint64 `json:"token_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	listing, err := nc.svc.Market().ListToken(core.TokenId(req.TokenID))
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, listing)
}

func (nc *NftController) Listings(w http.ResponseWriter, r *http.Request) {
	var seller *core.AccountId
	if v := r.URL.Query().Get("seller"); v != "" {
		s := core.AccountId(v)
		seller = &s
	}
	listings, err := nc.svc.Market().Listings(seller)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, listings)
}

func (nc *NftController) ExecuteSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListingID string `json:"listing_id"`
		Buyer     string `json:"buyer"`
		Price     string `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	price, err := core.ParseBalance(req.Price)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	payout, err := nc.svc.Market().ExecuteSale(req.ListingID, core.AccountId(req.Buyer), price)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, payout)
}
