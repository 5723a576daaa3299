package core

// Approval protocol. A token carries at most one approval, a capability the
// owner hands to a marketplace to transfer the token at or above an agreed
// minimum price. The per-token approval counter only ever grows, so an
// approval id is never reused on the same token.

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrMissingMinPrice     = errors.New("The msg argument must contain the minimum price")
	ErrOneApprovalPerToken = errors.New("At most one approval is allowed per Token")
)

// NftApproveMsg is the payload of the msg argument of NftApprove.
// Unknown fields are ignored.
type NftApproveMsg struct {
	MinPrice *Balance `json:"min_price"`
}

// NftApprove grants account an approval for the token. msg must carry the
// minimum sale price as a decimal string under min_price.
func (c *NftContract) NftApprove(tokenID TokenId, account AccountId, msg *string) error {
	logger := zap.L().Sugar()

	c.mu.Lock()
	defer c.mu.Unlock()

	if msg == nil {
		return ErrMissingMinPrice
	}
	var approveMsg NftApproveMsg
	if err := json.Unmarshal([]byte(*msg), &approveMsg); err != nil || approveMsg.MinPrice == nil {
		return fmt.Errorf("Could not find min_price in msg: %s", *msg)
	}

	token, err := c.loadToken(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return fmt.Errorf("Token ID `U64(%d)` was not found", tokenID)
	}
	if err := c.requireOwner(token); err != nil {
		return err
	}
	if err := ValidateAccountID(account); err != nil {
		return err
	}
	if len(token.Approvals) > 0 {
		return ErrOneApprovalPerToken
	}

	token.ApprovalCounter++
	token.Approvals[account] = TokenApproval{
		ApprovalID: token.ApprovalCounter,
		MinPrice:   *approveMsg.MinPrice,
	}
	token.ModifiedAt = c.env.Now()
	if err := c.saveToken(token); err != nil {
		return err
	}

	logger.Infow("token approved",
		"token_id", tokenID, "account", account,
		"approval_id", token.ApprovalCounter, "min_price", approveMsg.MinPrice.String())
	return nil
}

// NftRevokeAll clears the token's approval. Revoking a token with no
// approval is a no-op; the approval counter is never reset.
func (c *NftContract) NftRevokeAll(tokenID TokenId) error {
	logger := zap.L().Sugar()

	c.mu.Lock()
	defer c.mu.Unlock()

	token, err := c.loadToken(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return fmt.Errorf("Token ID `U64(%d)` was not found", tokenID)
	}
	if err := c.requireOwner(token); err != nil {
		return err
	}
	if len(token.Approvals) == 0 {
		return nil
	}

	token.Approvals = map[AccountId]TokenApproval{}
	token.ModifiedAt = c.env.Now()
	if err := c.saveToken(token); err != nil {
		return err
	}

	logger.Infow("approvals revoked", "token_id", tokenID)
	return nil
}
