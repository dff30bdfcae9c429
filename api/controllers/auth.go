package controllers

import (
	"net/http"

	"github.com/lavka-market/lavka-backend/api/responses"
	"github.com/lavka-market/lavka-backend/api/validators"
	"github.com/lavka-market/lavka-backend/internal/auth"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/logger"
)

type requestMagicLinkPayload struct {
	Email string `json:"email" validate:"required,email"`
}

type consumeProfilePayload struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

type consumeMagicLinkPayload struct {
	Token   string                 `json:"token" validate:"required"`
	Profile *consumeProfilePayload `json:"profile" validate:"omitempty"`
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type logoutPayload struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         userResponse `json:"user"`
}

func newSessionResponse(session *auth.Session) sessionResponse {
	return sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         newUserResponse(session.User),
	}
}

// AuthRequestMagicLink starts the passwordless login flow. The response never
// reveals whether the address belongs to an account.
func AuthRequestMagicLink(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload requestMagicLinkPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err := svc.RequestMagicLink(ctx, auth.RequestMagicLinkInput{
			Email: payload.Email,
			IP:    clientIP(r),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

// AuthConsumeMagicLink exchanges a one-time token for a session. First-time
// logins must carry a profile block.
func AuthConsumeMagicLink(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload consumeMagicLinkPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := auth.ConsumeInput{
			Token:     payload.Token,
			UserAgent: optionalString(r.UserAgent()),
			IP:        optionalString(clientIP(r)),
		}
		if payload.Profile != nil {
			input.Profile = &auth.Profile{
				Name:  payload.Profile.Name,
				Phone: optionalString(payload.Profile.Phone),
			}
		}

		session, err := svc.ConsumeMagicLink(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// AuthRefresh rotates the refresh token and issues a new access token.
func AuthRefresh(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload refreshPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		session, err := svc.Refresh(ctx, auth.RefreshInput{
			RefreshToken: payload.RefreshToken,
			UserAgent:    optionalString(r.UserAgent()),
			IP:           optionalString(clientIP(r)),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// AuthLogout revokes the presented refresh token. Unknown tokens are ignored.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload logoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Logout(ctx, payload.RefreshToken); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
