package cli

// ──────────────────────────────────────────────────────────────────────────────
// MintGate Market CLI – consume approvals and settle sales
// ──────────────────────────────────────────────────────────────────────────────
// Root group   : `market`
// Micro-routes : list, listings, cancel, sale
// ──────────────────────────────────────────────────────────────────────────────

import (
	"fmt"

	"github.com/spf13/cobra"

	core "github.com/epam/mintgate/core"
)

func mktHandleList(cmd *cobra.Command, args []string) error {
	tokenID, err := nftParseTokenID(args[0])
	if err != nil {
		return err
	}
	listing, err := cliMarket.ListToken(tokenID)
	if err != nil {
		return err
	}
	fmt.Printf("listing %s: token %d min price %s\n", listing.ID, listing.TokenID, listing.MinPrice)
	return nil
}

func mktHandleListings(cmd *cobra.Command, _ []string) error {
	var seller *core.AccountId
	if v, _ := cmd.Flags().GetString("seller"); v != "" {
		s := core.AccountId(v)
		seller = &s
	}
	listings, err := cliMarket.Listings(seller)
	if err != nil {
		return err
	}
	for _, l := range listings {
		status := "open"
		if l.Sold {
			status = "sold to " + string(l.Buyer)
		}
		fmt.Printf("%-36s token %6d seller %-24s min %-12s %s\n",
			l.ID, l.TokenID, l.Seller, l.MinPrice, status)
	}
	return nil
}

func mktHandleCancel(cmd *cobra.Command, args []string) error {
	return cliMarket.CancelListing(args[0])
}

func mktHandleSale(cmd *cobra.Command, args []string) error {
	buyer, _ := cmd.Flags().GetString("buyer")
	priceStr, _ := cmd.Flags().GetString("price")
	price, err := core.ParseBalance(priceStr)
	if err != nil {
		return err
	}
	payout, err := cliMarket.ExecuteSale(args[0], core.AccountId(buyer), price)
	if err != nil {
		return err
	}
	for account, share := range payout {
		fmt.Printf("%-40s %s\n", account, share)
	}
	return nil
}

var mktCmd = &cobra.Command{
	Use:               "market",
	Short:             "Marketplace listings and sales",
	PersistentPreRunE: cliInitMiddleware,
}

var mktListCmd = &cobra.Command{Use: "list <token-id>", Short: "List an approved token", Args: cobra.ExactArgs(1), RunE: mktHandleList}
var mktListingsCmd = &cobra.Command{Use: "listings", Short: "Show listings", Args: cobra.NoArgs, RunE: mktHandleListings}
var mktCancelCmd = &cobra.Command{Use: "cancel <listing-id>", Short: "Cancel an open listing", Args: cobra.ExactArgs(1), RunE: mktHandleCancel}
var mktSaleCmd = &cobra.Command{Use: "sale <listing-id>", Short: "Settle a sale", Args: cobra.ExactArgs(1), RunE: mktHandleSale}

func init() {
	mktListingsCmd.Flags().String("seller", "", "filter by seller")

	mktSaleCmd.Flags().String("buyer", "", "buyer account")
	mktSaleCmd.Flags().String("price", "", "sale price")
	mktSaleCmd.MarkFlagRequired("buyer")
	mktSaleCmd.MarkFlagRequired("price")

	mktCmd.AddCommand(mktListCmd, mktListingsCmd, mktCancelCmd, mktSaleCmd)
}

var MarketCmd = mktCmd

func RegisterMarket(root *cobra.Command) { root.AddCommand(MarketCmd) }
