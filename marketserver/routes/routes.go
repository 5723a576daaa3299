package routes

import (
	"github.com/gorilla/mux"

	"github.com/epam/mintgate/marketserver/controllers"
	"github.com/epam/mintgate/marketserver/middleware"
)

func Register(r *mux.Router, nc *controllers.NftController) {
	r.Use(middleware.Logger)

	r.HandleFunc("/api/nft/metadata", nc.Metadata).Methods("GET")
	r.HandleFunc("/api/nft/tokens", nc.Tokens).Methods("GET")
	r.HandleFunc("/api/nft/token/{id}", nc.Token).Methods("GET")
	r.HandleFunc("/api/nft/token/{id}/uri", nc.TokenURI).Methods("GET")
	r.HandleFunc("/api/nft/token/{id}/payout", nc.Payout).Methods("GET")
	r.HandleFunc("/api/nft/owner/{account}/tokens", nc.TokensForOwner).Methods("GET")
	r.HandleFunc("/api/nft/claim", nc.Claim).Methods("POST")
	r.HandleFunc("/api/nft/transfer", nc.Transfer).Methods("POST")
	r.HandleFunc("/api/nft/approve", nc.Approve).Methods("POST")
	r.HandleFunc("/api/nft/revoke", nc.Revoke).Methods("POST")

	r.HandleFunc("/api/gate", nc.CreateCollectible).Methods("POST")
	r.HandleFunc("/api/gate/{gate_id}", nc.Collectible).Methods("GET")
	r.HandleFunc("/api/creator/{account}/collectibles", nc.CollectiblesByCreator).Methods("GET")

	r.HandleFunc("/api/market/list", nc.ListToken).Methods("POST")
	r.HandleFunc("/api/market/listings", nc.Listings).Methods("GET")
	r.HandleFunc("/api/market/sale", nc.ExecuteSale).Methods("POST")
}
