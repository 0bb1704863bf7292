package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"aura/internal/domain/entity"
	domainerrors "aura/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	signUpPath = "/auth/v1/signup"
	tokenPath  = "/auth/v1/token"
	logoutPath = "/auth/v1/logout"
)

// credentialsPayload is the request body for signup and password grants.
type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshPayload is the request body for refresh-token grants.
type refreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

// sessionResponse is the session shape the auth endpoints return. Unknown
// fields are ignored; absent fields decode to their zero values.
type sessionResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// SignUp creates a new account. When the backend requires email confirmation
// it returns no token material yet; in that case the returned session is nil
// with a nil error, and the caller must treat the user as unauthenticated.
func (c *Client) SignUp(ctx context.Context, email, password string) (*entity.Session, error) {
	var resp sessionResponse
	err := c.do(ctx, http.MethodPost, signUpPath, nil, "", &credentialsPayload{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, errors.Wrap(err, "sign up")
	}

	if resp.AccessToken == "" {
		// Account created, session pending email confirmation.
		return nil, nil
	}

	return c.toSession(&resp)
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	query := url.Values{"grant_type": []string{"password"}}

	var resp sessionResponse
	err := c.do(ctx, http.MethodPost, tokenPath, query, "", &credentialsPayload{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		// The token endpoint reports bad credentials as a generic request
		// rejection; surface them as the credential error the UI expects.
		kind := domainerrors.KindOf(err)
		if kind == domainerrors.KindValidationRejected || kind == domainerrors.KindUnauthorized {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, err.Error())
		}

		return nil, errors.Wrap(err, "password grant")
	}

	return c.toSession(&resp)
}

// RefreshSession exchanges a refresh token for a fresh session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	query := url.Values{"grant_type": []string{"refresh_token"}}

	var resp sessionResponse
	err := c.do(ctx, http.MethodPost, tokenPath, query, "", &refreshPayload{
		RefreshToken: refreshToken,
	}, &resp)
	if err != nil {
		return nil, errors.Wrap(err, "refresh grant")
	}

	return c.toSession(&resp)
}

// SignOut invalidates the current session on the server. The caller clears
// local state regardless of the outcome.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, logoutPath, nil, "", nil, nil); err != nil {
		return errors.Wrap(err, "sign out")
	}

	return nil
}

// toSession converts the wire session into the domain session.
func (c *Client) toSession(resp *sessionResponse) (*entity.Session, error) {
	if resp.AccessToken == "" {
		return nil, errors.WithStack(domainerrors.ErrDecodeFailed.WithDetails("session response without access token"))
	}

	userID, err := uuid.Parse(resp.User.ID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrDecodeFailed.WithDetails(err.Error()), "parse user id")
	}

	session := &entity.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiryOf(resp),
		UserID:       userID,
		Email:        resp.User.Email,
		Metadata:     stringMetadata(resp.User.UserMetadata),
	}

	return session, nil
}

// expiryOf resolves the access token expiry, preferring the explicit fields
// and falling back to the token's own exp claim when the server omits both.
func expiryOf(resp *sessionResponse) time.Time {
	if resp.ExpiresAt > 0 {
		return time.Unix(resp.ExpiresAt, 0).UTC()
	}
	if resp.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).UTC()
	}

	return tokenExpiry(resp.AccessToken)
}

// tokenExpiry reads the exp claim of a JWT without verifying its signature.
// This client never trusts the claim for authorization, only for deciding
// when to refresh; the server remains the authority.
func tokenExpiry(accessToken string) time.Time {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time.UTC()
}

// stringMetadata keeps the string-valued entries of the opaque user metadata.
func stringMetadata(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return map[string]string{}
	}

	metadata := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			metadata[key] = v
		case fmt.Stringer:
			metadata[key] = v.String()
		}
	}

	return metadata
}
