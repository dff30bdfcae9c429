package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/internal/mailer"
	"github.com/lavka-market/lavka-backend/internal/users"
	pkgAuth "github.com/lavka-market/lavka-backend/pkg/auth"
	"github.com/lavka-market/lavka-backend/pkg/config"
	"github.com/lavka-market/lavka-backend/pkg/db/models"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/redis"
	"github.com/lavka-market/lavka-backend/pkg/security"
)

const invalidTokenMessage = "invalid or expired token"

// Service defines the behavior needed by the auth controller.
type Service interface {
	RequestMagicLink(ctx context.Context, input RequestMagicLinkInput) error
	ConsumeMagicLink(ctx context.Context, input ConsumeInput) (*Session, error)
	Refresh(ctx context.Context, input RefreshInput) (*Session, error)
	Logout(ctx context.Context, refreshToken string) error
}

type tokenRepository interface {
	CreateMagicToken(ctx context.Context, token *models.MagicToken) error
	FindValidMagicToken(ctx context.Context, tokenHash string, now time.Time) (*models.MagicToken, error)
	ConsumeMagicToken(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindValidRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeRefreshTokenByHash(ctx context.Context, tokenHash string, at time.Time) error
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, input users.CreateUserInput) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Tokens    tokenRepository
	Users     userRepository
	Limiter   redis.RateLimiter
	Mailer    mailer.Mailer
	JWTConfig config.JWTConfig
	MagicLink config.MagicLinkConfig
}

type service struct {
	tokens  tokenRepository
	users   userRepository
	limiter redis.RateLimiter
	mailer  mailer.Mailer
	jwtCfg  config.JWTConfig
	magic   config.MagicLinkConfig
}

// NewService constructs the magic-link auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tokens == nil {
		return nil, fmt.Errorf("token repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Limiter == nil {
		return nil, fmt.Errorf("rate limiter is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	return &service{
		tokens:  params.Tokens,
		users:   params.Users,
		limiter: params.Limiter,
		mailer:  params.Mailer,
		jwtCfg:  params.JWTConfig,
		magic:   params.MagicLink,
	}, nil
}

// RequestMagicLink stores a hashed single-use token and mails the login link.
// The response is the same whether or not the email has an account.
func (s *service) RequestMagicLink(ctx context.Context, input RequestMagicLinkInput) error {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return err
	}

	scope := fmt.Sprintf("magic:%s:%s", input.IP, email)
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, scope, int64(s.magic.RateLimitCount), s.magic.RateLimitWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login requests, try again later")
	}

	token, hash, err := security.GenerateToken(s.jwtCfg.Secret)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate magic token")
	}

	now := time.Now().UTC()
	record := &models.MagicToken{
		ID:        uuid.New(),
		Email:     email,
		TokenHash: hash,
		ExpiresAt: now.Add(s.magic.TokenTTL),
	}
	if err := s.tokens.CreateMagicToken(ctx, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store magic token")
	}

	link := fmt.Sprintf("%s/auth/finish?token=%s", strings.TrimRight(s.magic.FrontendBaseURL, "/"), token)
	if err := s.mailer.SendMagicLink(ctx, email, link); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send magic link")
	}
	return nil
}

// ConsumeMagicLink exchanges a valid token for a session. Unknown emails must
// supply a profile so the account can be created on the spot.
func (s *service) ConsumeMagicLink(ctx context.Context, input ConsumeInput) (*Session, error) {
	if strings.TrimSpace(input.Token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token required")
	}

	now := time.Now().UTC()
	hash := security.HashToken(input.Token, s.jwtCfg.Secret)
	record, err := s.tokens.FindValidMagicToken(ctx, hash, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load magic token")
	}

	user, err := s.users.FindByEmail(ctx, record.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		if input.Profile == nil {
			return nil, pkgerrors.New(pkgerrors.CodeProfileRequired, "profile required to finish sign up")
		}
		name := strings.TrimSpace(input.Profile.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
		}
		user, err = s.users.Create(ctx, users.CreateUserInput{
			Email: record.Email,
			Name:  name,
			Phone: input.Profile.Phone,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}

	if err := s.tokens.ConsumeMagicToken(ctx, record.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume magic token")
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record login")
	}

	return s.issueSession(ctx, user, input.UserAgent, input.IP, now)
}

// Refresh rotates the refresh token and mints a new access token. The spent
// token is revoked even if the caller retries with it.
func (s *service) Refresh(ctx context.Context, input RefreshInput) (*Session, error) {
	if strings.TrimSpace(input.RefreshToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "refresh token required")
	}

	now := time.Now().UTC()
	hash := security.HashToken(input.RefreshToken, s.jwtCfg.Secret)
	record, err := s.tokens.FindValidRefreshToken(ctx, hash, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load refresh token")
	}

	if err := s.tokens.RevokeRefreshToken(ctx, record.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke refresh token")
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}

	userAgent := input.UserAgent
	if userAgent == nil {
		userAgent = record.UserAgent
	}
	ip := input.IP
	if ip == nil {
		ip = record.IP
	}
	return s.issueSession(ctx, user, userAgent, ip, now)
}

// Logout revokes the refresh token. Unknown tokens are ignored.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	hash := security.HashToken(refreshToken, s.jwtCfg.Secret)
	if err := s.tokens.RevokeRefreshTokenByHash(ctx, hash, time.Now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke refresh token")
	}
	return nil
}

func (s *service) issueSession(ctx context.Context, user *models.User, userAgent, ip *string, now time.Time) (*Session, error) {
	access, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refresh, refreshHash, err := security.GenerateToken(s.jwtCfg.Secret)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate refresh token")
	}
	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: refreshHash,
		ExpiresAt: now.Add(s.jwtCfg.RefreshTokenTTL()),
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := s.tokens.CreateRefreshToken(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	return &Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}
	return email, nil
}
