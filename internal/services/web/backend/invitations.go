package backend

import "context"

// InvitationAcceptData is the data payload of a successful acceptance.
type InvitationAcceptData struct {
	OrgID int64 `json:"orgId"`
}

// AcceptInvitation joins the signed-in user to the invitation's organization.
// The backend treats repeated calls with the same token as idempotent.
func (c *Client) AcceptInvitation(ctx context.Context, token string) (Response, error) {
	return c.post(ctx, PathInvitationAccept, map[string]string{"token": token})
}
