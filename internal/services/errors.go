package services

import "errors"

// Error variables
var (
	ErrEmailAlreadyExists    = errors.New("user with email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrAuthorNotFound        = errors.New("author not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrBookNotFound          = errors.New("book not found")
	ErrCategoryAlreadyExists = errors.New("category with name already exists")
	ErrBookAlreadyExists     = errors.New("book with title or isbn already exists")
	ErrResetTokenNotFound    = errors.New("reset token not found")
	ErrResetTokenMismatch    = errors.New("invalid reset token")
	ErrMissingID             = errors.New("id parameter is required")
)
