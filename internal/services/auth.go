package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/bookcase-labs/library-catalog/internal/facades"
	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/repositories"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users needed by auth flows.
type UserWriter interface {
	Create(ctx context.Context, user *models.UserDB) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// JWTGenerator defines an interface for generating session tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, role string) (string, error)
}

// ResetTokenStore defines the reset-token record operations. Save must
// replace any prior record for the user atomically.
type ResetTokenStore interface {
	Save(ctx context.Context, userID uuid.UUID, record *models.ResetTokenRecord) error
	Get(ctx context.Context, userID uuid.UUID) (*models.ResetTokenRecord, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Mailer defines the outbound notification collaborator.
type Mailer interface {
	Send(to, subject, body string) error
}

// AuditPublisher defines the best-effort domain event publisher.
type AuditPublisher interface {
	Publish(ctx context.Context, eventType, entityID string) error
}

// AuthService handles signup, login and the password-reset lifecycle.
type AuthService struct {
	reader       UserReader
	writer       UserWriter
	resetTokens  ResetTokenStore
	jwt          JWTGenerator
	mailer       Mailer
	audit        AuditPublisher
	creds        *Credentials
	resetURLBase string
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	resetTokens ResetTokenStore,
	jwt JWTGenerator,
	mailer Mailer,
	audit AuditPublisher,
	creds *Credentials,
	resetURLBase string,
) *AuthService {
	return &AuthService{
		reader:       reader,
		writer:       writer,
		resetTokens:  resetTokens,
		jwt:          jwt,
		mailer:       mailer,
		audit:        audit,
		creds:        creds,
		resetURLBase: resetURLBase,
	}
}

// Signup registers a new user with the default role.
func (svc *AuthService) Signup(ctx context.Context, in validation.SignupInput) (*models.UserDB, error) {
	in, vErrs := validation.ValidateSignup(in)
	if vErrs != nil {
		return nil, vErrs
	}

	existing, err := svc.reader.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := svc.creds.HashPassword(in.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user := &models.UserDB{
		UserID:       uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}

	if err := svc.writer.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrEmailAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	svc.publishAudit(facades.EventUserSignedUp, user.UserID.String())

	return user, nil
}

// Login authenticates a user and returns a session token. An unknown
// email and a wrong password produce the same error, so the caller
// cannot probe which accounts exist.
func (svc *AuthService) Login(ctx context.Context, in validation.LoginInput) (string, error) {
	in, vErrs := validation.ValidateLogin(in)
	if vErrs != nil {
		return "", vErrs
	}

	user, err := svc.reader.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}

	if !svc.creds.VerifyPassword(in.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Role)
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "err", err)
		return "", err
	}

	return token, nil
}

// ForgotPassword issues a fresh reset token and mails the reset link.
// The outcome is identical whether or not the account exists, and mail
// delivery is fire-and-forget: its failure is logged, never surfaced.
func (svc *AuthService) ForgotPassword(ctx context.Context, in validation.ForgotPasswordInput) error {
	in, vErrs := validation.ValidateForgotPassword(in)
	if vErrs != nil {
		return vErrs
	}

	user, err := svc.reader.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Same response as the success path: no account enumeration.
			logger.Log.Infow("password reset requested for unknown email")
			return nil
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}

	secret, hash, err := svc.creds.NewResetSecret()
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "err", err)
		return err
	}

	// Saving replaces any earlier token for this user, so at most one
	// reset secret is redeemable at any moment.
	record := &models.ResetTokenRecord{TokenHash: hash, CreatedAt: time.Now().UTC()}
	if err := svc.resetTokens.Save(ctx, user.UserID, record); err != nil {
		logger.Log.Errorw("failed to save reset token", "err", err)
		return err
	}

	link := fmt.Sprintf("%s?id=%s&token=%s", svc.resetURLBase, user.UserID, url.QueryEscape(secret))
	to := user.Email
	go func() {
		body := fmt.Sprintf(
			"<p>A password reset was requested for your account.</p>"+
				"<p><a href=%q>Reset your password</a></p>"+
				"<p>If you did not request this, you can ignore this message.</p>",
			link,
		)
		if err := svc.mailer.Send(to, "Password reset", body); err != nil {
			logger.Log.Errorw("failed to deliver reset email", "err", err)
		}
	}()

	svc.publishAudit(facades.EventPasswordResetRequested, user.UserID.String())

	return nil
}

// ResetPassword redeems a reset token and sets the new password. The
// token is consumed on success and cannot be redeemed twice.
func (svc *AuthService) ResetPassword(ctx context.Context, in validation.ResetPasswordInput) error {
	in, vErrs := validation.ValidateResetPassword(in)
	if vErrs != nil {
		return vErrs
	}

	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return ErrResetTokenNotFound
	}

	record, err := svc.resetTokens.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrResetTokenNotFound
		}
		logger.Log.Errorw("failed to get reset token", "err", err)
		return err
	}

	if !svc.creds.VerifyPassword(in.Token, record.TokenHash) {
		return ErrResetTokenMismatch
	}

	passwordHash, err := svc.creds.HashPassword(in.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, passwordHash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}

	// Consume exactly once; a second redeem of the same secret finds
	// no record and fails.
	if err := svc.resetTokens.Delete(ctx, userID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logger.Log.Errorw("failed to delete reset token", "err", err)
		return err
	}

	svc.publishAudit(facades.EventPasswordReset, userID.String())

	return nil
}

// publishAudit emits a best-effort audit event in the background.
func (svc *AuthService) publishAudit(eventType, entityID string) {
	if svc.audit == nil {
		return
	}
	go func() {
		if err := svc.audit.Publish(context.Background(), eventType, entityID); err != nil {
			logger.Log.Errorw("failed to publish audit event", "type", eventType, "err", err)
		}
	}()
}
