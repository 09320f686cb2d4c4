package backend

import (
	"context"
	"net/url"
)

// VerifyToken calls a GET verification endpoint with token as the query
// parameter. The call never carries credentials.
func (c *Client) VerifyToken(ctx context.Context, path, token string) (Response, error) {
	return c.get(ctx, path, url.Values{"token": {token}})
}

// VerificationData is the data payload of a successful verification. Email
// verification fills Email; invitation verification fills both.
type VerificationData struct {
	OrgID int64  `json:"orgId"`
	Email string `json:"email"`
}
