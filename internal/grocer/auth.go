package grocer

import (
	"context"
)

// AuthResult is the normalized payload of the auth endpoints that issue a
// token (login, OTP verification).
type AuthResult struct {
	Token  string `json:"token"`
	UserID ID     `json:"userId"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Login exchanges an identifier (email or phone) and password for a token.
// The token is returned, not stored; callers decide whether to persist it.
func (c *Client) Login(ctx context.Context, identifier, password string) (AuthResult, error) {
	if identifier == "" || password == "" {
		return AuthResult{}, validationError("identifier and password are required")
	}

	var result AuthResult
	res, err := c.req(ctx).
		SetBody(map[string]string{
			"identifier": identifier,
			"password":   password,
		}).
		Post("/auth/login")

	return result, decodeEnvelope(res, err, &result)
}

// RequestOTP asks the server to send a one-time code to the given email.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	if email == "" {
		return validationError("email is required")
	}

	res, err := c.req(ctx).
		SetBody(map[string]string{"email": email}).
		Post("/auth/request-otp")

	return decodeEnvelope(res, err, nil)
}

// VerifyOTP submits a one-time code and returns the resulting session token.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (AuthResult, error) {
	if email == "" || otp == "" {
		return AuthResult{}, validationError("email and otp are required")
	}

	var result AuthResult
	res, err := c.req(ctx).
		SetBody(map[string]string{
			"email": email,
			"otp":   otp,
		}).
		Post("/auth/verify-otp")

	return result, decodeEnvelope(res, err, &result)
}

// ForgotPassword starts the server-side password reset flow for the email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return validationError("email is required")
	}

	res, err := c.req(ctx).
		SetBody(map[string]string{"email": email}).
		Post("/auth/forgot-password")

	return decodeEnvelope(res, err, nil)
}
