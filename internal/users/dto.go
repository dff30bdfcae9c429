package users

import (
	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

// CreateUserInput holds the data required to persist a new user.
type CreateUserInput struct {
	Email string
	Name  string
	Phone *string
}

// UpdateProfileInput carries the fields a user may edit on their own profile.
type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

// AdminUserFilters narrows the admin user listing.
type AdminUserFilters struct {
	Query    string
	IsActive *bool
}

// UserList is one page of users.
type UserList struct {
	Users []models.User
	Page  pagination.Page
}
