package controllers

import (
	"net/http"
	"strings"

	"github.com/lavka-market/lavka-backend/api/responses"
	"github.com/lavka-market/lavka-backend/internal/users"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/logger"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

type userListResponse struct {
	Users []userResponse  `json:"users"`
	Page  pagination.Page `json:"pagination"`
}

// AdminUsersList lists accounts filtered by q (email or name) and isActive.
func AdminUsersList(svc users.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users admin service unavailable"))
			return
		}

		filters := users.AdminUserFilters{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
		switch strings.TrimSpace(r.URL.Query().Get("isActive")) {
		case "":
		case "true", "1":
			active := true
			filters.IsActive = &active
		case "false", "0":
			active := false
			filters.IsActive = &active
		default:
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "isActive must be a boolean"))
			return
		}

		list, err := svc.List(ctx, pagination.FromQuery(r.URL.Query()), filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out := make([]userResponse, 0, len(list.Users))
		for i := range list.Users {
			out = append(out, newUserResponse(&list.Users[i]))
		}
		responses.WriteSuccess(w, userListResponse{Users: out, Page: list.Page})
	}
}

// AdminUserActivate re-enables a disabled account.
func AdminUserActivate(svc users.AdminService, logg *logger.Logger) http.HandlerFunc {
	return setUserActive(svc, logg, true)
}

// AdminUserDeactivate disables an account. Disabled accounts cannot log in.
func AdminUserDeactivate(svc users.AdminService, logg *logger.Logger) http.HandlerFunc {
	return setUserActive(svc, logg, false)
}

func setUserActive(svc users.AdminService, logg *logger.Logger, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users admin service unavailable"))
			return
		}
		userID, err := parseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.SetActive(ctx, userID, active)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newUserResponse(user))
	}
}
