package api

import (
	"context"
	"net/http"

	apperrors "marketplace-admin/internal/common/errors"
)

// LoginRequest is the auth/login payload. The OTP goes over the wire as
// a number even though operators type it as a string.
type LoginRequest struct {
	Phone string `json:"phone"`
	OTP   int64  `json:"otp"`
}

// LoginResponse carries the bearer token issued on success.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges phone + OTP for a bearer token. A 2xx response without
// a token still fails; callers persist nothing unless a token came back.
func (c *Client) Login(ctx context.Context, phone string, otp int64) (string, error) {
	var resp LoginResponse
	err := c.sendJSON(ctx, "auth", http.MethodPost, "/auth/login", LoginRequest{Phone: phone, OTP: otp}, &resp)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Code == apperrors.ErrCodeAPI {
			return "", apperrors.NewAuthError(appErr.Message)
		}
		return "", err
	}
	if resp.AccessToken == "" {
		return "", apperrors.NewTokenMissingError()
	}
	return resp.AccessToken, nil
}
