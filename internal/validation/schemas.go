package validation

// SignupInput is the raw signup payload.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// ValidateSignup checks the signup payload and returns a normalized copy.
func ValidateSignup(in SignupInput) (SignupInput, Errs) {
	out := SignupInput{
		Username: NormalizeUsername(in.Username),
		Email:    NormalizeEmail(in.Email),
		Password: in.Password,
	}
	var errs Errs
	errs = required(errs, "username", out.Username)
	if out.Username != "" {
		errs = lenBetween(errs, "username", out.Username, 1, 255)
	}
	errs = email(errs, "email", out.Email)
	errs = lenBetween(errs, "password", out.Password, 8, 255)
	if errs != nil {
		return SignupInput{}, errs
	}
	return out, nil
}

// LoginInput is the raw login payload.
type LoginInput struct {
	Email    string
	Password string
}

// ValidateLogin checks the login payload and returns a normalized copy.
func ValidateLogin(in LoginInput) (LoginInput, Errs) {
	out := LoginInput{Email: NormalizeEmail(in.Email), Password: in.Password}
	var errs Errs
	errs = email(errs, "email", out.Email)
	errs = required(errs, "password", out.Password)
	if errs != nil {
		return LoginInput{}, errs
	}
	return out, nil
}

// ForgotPasswordInput is the raw forgot-password payload.
type ForgotPasswordInput struct {
	Email string
}

// ValidateForgotPassword checks the forgot-password payload.
func ValidateForgotPassword(in ForgotPasswordInput) (ForgotPasswordInput, Errs) {
	out := ForgotPasswordInput{Email: NormalizeEmail(in.Email)}
	var errs Errs
	errs = email(errs, "email", out.Email)
	if errs != nil {
		return ForgotPasswordInput{}, errs
	}
	return out, nil
}

// ResetPasswordInput is the raw reset-password payload.
type ResetPasswordInput struct {
	UserID   string
	Token    string
	Password string
}

// ValidateResetPassword checks the reset-password payload.
func ValidateResetPassword(in ResetPasswordInput) (ResetPasswordInput, Errs) {
	var errs Errs
	errs = reference(errs, "userId", in.UserID)
	errs = required(errs, "token", in.Token)
	errs = lenBetween(errs, "password", in.Password, 8, 255)
	if errs != nil {
		return ResetPasswordInput{}, errs
	}
	return in, nil
}

// UserUpdateInput is the raw user-update payload. The password is
// deliberately absent: it cannot be changed through the generic update path.
type UserUpdateInput struct {
	Username string
	Email    string
	Role     string
}

// ValidateUserUpdate checks the user-update payload and returns a
// normalized copy.
func ValidateUserUpdate(in UserUpdateInput) (UserUpdateInput, Errs) {
	out := UserUpdateInput{
		Username: NormalizeUsername(in.Username),
		Email:    NormalizeEmail(in.Email),
		Role:     in.Role,
	}
	var errs Errs
	errs = required(errs, "username", out.Username)
	if out.Username != "" {
		errs = lenBetween(errs, "username", out.Username, 1, 255)
	}
	errs = email(errs, "email", out.Email)
	if out.Role != "user" && out.Role != "admin" {
		errs = append(errs, ErrField{Field: "role", Msg: "must be one of: user, admin"})
	}
	if errs != nil {
		return UserUpdateInput{}, errs
	}
	return out, nil
}

// AuthorInput is the raw author payload, shared by create and update.
type AuthorInput struct {
	Name        string
	Description string
	UserID      string
}

// ValidateAuthor checks the author payload.
func ValidateAuthor(in AuthorInput) (AuthorInput, Errs) {
	var errs Errs
	errs = lenBetween(errs, "name", in.Name, 1, 255)
	errs = lenBetween(errs, "description", in.Description, 10, 1000)
	errs = reference(errs, "userId", in.UserID)
	if errs != nil {
		return AuthorInput{}, errs
	}
	return in, nil
}

// CategoryInput is the raw category payload, shared by create and update.
type CategoryInput struct {
	Name   string
	UserID string
}

// ValidateCategory checks the category payload.
func ValidateCategory(in CategoryInput) (CategoryInput, Errs) {
	var errs Errs
	errs = lenBetween(errs, "name", in.Name, 1, 20)
	errs = reference(errs, "userId", in.UserID)
	if errs != nil {
		return CategoryInput{}, errs
	}
	return in, nil
}

// BookInput is the raw book payload, shared by create and update.
type BookInput struct {
	Title       string
	Description string
	AuthorID    string
	ISBN        string
	CategoryID  string
	UserID      string
}

// ValidateBook checks the book payload.
func ValidateBook(in BookInput) (BookInput, Errs) {
	var errs Errs
	errs = lenBetween(errs, "title", in.Title, 1, 500)
	errs = lenBetween(errs, "description", in.Description, 10, 1000)
	errs = reference(errs, "authorId", in.AuthorID)
	errs = lenExact(errs, "isbn", in.ISBN, 13)
	errs = reference(errs, "categoryId", in.CategoryID)
	errs = reference(errs, "userId", in.UserID)
	if errs != nil {
		return BookInput{}, errs
	}
	return in, nil
}
