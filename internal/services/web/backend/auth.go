package backend

import (
	"context"
	"fmt"
	"strings"
)

// Tokens is the credential pair issued at sign-in.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SignIn exchanges email and password for tokens.
func (c *Client) SignIn(ctx context.Context, email, password string) (Tokens, error) {
	resp, err := c.post(ctx, PathSignIn, signInRequest{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return Tokens{}, err
	}
	return decodeTokens(resp)
}

// RefreshTokens exchanges a refresh token for a new pair.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (Tokens, error) {
	resp, err := c.post(ctx, PathTokenRefresh, refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return Tokens{}, err
	}
	tokens, err := decodeTokens(resp)
	if err != nil {
		return Tokens{}, err
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	return tokens, nil
}

// SignOut revokes the caller's session. Call it on an authenticated client.
func (c *Client) SignOut(ctx context.Context) error {
	_, err := c.post(ctx, PathSignOut, struct{}{})
	return err
}

func decodeTokens(resp Response) (Tokens, error) {
	var tokens Tokens
	if err := resp.DecodeData(&tokens); err != nil {
		return Tokens{}, fmt.Errorf("decode tokens: %w", err)
	}
	if strings.TrimSpace(tokens.AccessToken) == "" {
		return Tokens{}, fmt.Errorf("decode tokens: access token missing")
	}
	return tokens, nil
}
