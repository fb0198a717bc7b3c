package app

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      UserRole `json:"role"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type userResponse struct {
	User User `json:"user"`
}

// Login exchanges credentials for a bearer token and the account profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, User, error) {
	var resp authResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", User{}, err
	}
	return resp.Token, resp.User, nil
}

// Register creates an account and logs it in in one call.
func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string, role UserRole) (string, User, error) {
	var resp authResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", registerRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	}, &resp)
	if err != nil {
		return "", User{}, err
	}
	return resp.Token, resp.User, nil
}

// Me returns the account behind the stored credential.
func (c *Client) Me(ctx context.Context) (User, error) {
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}
