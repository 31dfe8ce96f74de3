package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/dmitrijs2005/duoledger/internal/server/auth"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/dmitrijs2005/duoledger/internal/server/notify"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/repomanager"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
	Household *models.Household
}

// Profile is a user together with their household, if any.
type Profile struct {
	User      *models.User
	Household *models.Household
}

// UserService owns credentials: registration, login, profile lookup and
// email verification.
type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	notifier    notify.Notifier
	baseURL     string
	logger      logging.Logger
	now         func() time.Time
}

// NewUserService constructs a UserService. baseURL is the public origin used
// in verification links.
func NewUserService(m repomanager.RepositoryManager, tokens *auth.TokenService, n notify.Notifier, baseURL string, l logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		tokens:      tokens,
		notifier:    n,
		baseURL:     baseURL,
		logger:      l.With("module", "users"),
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new unverified user and sends the verification link.
// Delivery problems are logged; the account exists either way.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" || len(password) > auth.MaxPasswordBytes {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Users(s.repomanager.DB().Conn())

	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrorUserExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internal(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, passOr(err, common.ErrorValidation)
	}

	token, err := common.MakeRandHexString(common.VerificationTokenBytes)
	if err != nil {
		return nil, internal(err)
	}

	now := s.now().UTC()
	expires := now.Add(common.VerificationTTL)

	user, err := repo.Create(ctx, &models.User{
		ID:                  newID(),
		Email:               email,
		PasswordHash:        hash,
		Name:                name,
		VerificationToken:   &token,
		VerificationExpires: &expires,
		CreatedAt:           now,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorUserExists
		}
		return nil, internal(err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	msg := notify.VerificationMessage(s.baseURL, user.Email, user.Name, token)
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn(ctx, "verification message not sent", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Authenticate checks credentials and issues a session token. Unverified
// users are turned away before the password is checked.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	repo := s.repomanager.Users(s.repomanager.DB().Conn())

	user, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.SpendComparison(password)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, internal(err)
	}

	if !user.EmailVerified {
		return nil, common.ErrorEmailNotVerified
	}

	ok, err := auth.ComparePassword(user.PasswordHash, password)
	if err != nil {
		return nil, internal(err)
	}
	if !ok {
		return nil, common.ErrorInvalidCredentials
	}

	token, expires, err := s.tokens.Sign(user.ID, user.Email)
	if err != nil {
		return nil, internal(err)
	}

	household, err := s.household(ctx, user)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, ExpiresAt: expires, User: user, Household: household}, nil
}

// GetProfile returns the user and their household.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.repomanager.Users(s.repomanager.DB().Conn()).GetByID(ctx, userID)
	if err != nil {
		return nil, passOr(err, common.ErrorNotFound)
	}

	household, err := s.household(ctx, user)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Household: household}, nil
}

func (s *UserService) household(ctx context.Context, user *models.User) (*models.Household, error) {
	if user.HouseholdID == nil {
		return nil, nil
	}
	h, err := s.repomanager.Households(s.repomanager.DB().Conn()).GetByID(ctx, *user.HouseholdID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, internal(err)
	}
	return h, nil
}

// VerifyEmail consumes a verification token. A token works once and only
// before it expires; every failure reads the same to the caller.
func (s *UserService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Users(s.repomanager.DB().Conn())

	user, err := repo.ConsumeVerificationToken(ctx, token, s.now().UTC())
	if err == nil {
		s.logger.Info(ctx, "email verified", "user_id", user.ID)
		return user, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, internal(err)
	}

	reason := "unknown"
	if pending, lookupErr := repo.GetByVerificationToken(ctx, token); lookupErr == nil {
		reason = "expired"
		s.logger.Info(ctx, "verification rejected", "reason", reason, "user_id", pending.ID)
	} else {
		s.logger.Info(ctx, "verification rejected", "reason", reason)
	}

	return nil, common.ErrorInvalidOrExpiredToken
}
