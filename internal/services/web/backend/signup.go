package backend

import (
	"context"
	"strings"
)

// SignupRequest completes an account for a verified email.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SendSignupVerification asks the backend to mail a verification link to email.
func (c *Client) SendSignupVerification(ctx context.Context, email string) error {
	_, err := c.post(ctx, PathEmailVerification, map[string]string{"email": strings.TrimSpace(email)})
	return err
}

// SignUp creates the account.
func (c *Client) SignUp(ctx context.Context, req SignupRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	_, err := c.post(ctx, PathSignUp, req)
	return err
}
