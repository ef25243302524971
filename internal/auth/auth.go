// Package auth is the local email and password identity provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"event-planner/internal/models"
	"event-planner/internal/storage"
)

const minPasswordLen = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = storage.ErrEmailTaken
	ErrBadToken           = errors.New("invalid token")
)

// Provider signs users up, in and out.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
}

// UserStore persists accounts and signed-out tokens.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
	RevokeSession(ctx context.Context, id string, expiresAt time.Time) error
	SessionRevoked(ctx context.Context, id string) (bool, error)
}

// Session is a signed-in user and the bearer token that proves it.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Local keeps accounts in the planner database and issues HS256 tokens.
type Local struct {
	store  UserStore
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

var _ Provider = (*Local)(nil)

func NewLocal(store UserStore, secret string, ttl time.Duration, log zerolog.Logger) *Local {
	return &Local{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log.With().Str("component", "auth").Logger(),
		now:    time.Now,
	}
}

func (l *Local) SignUp(ctx context.Context, email, password string) (Session, error) {
	email, err := credentials(email, password)
	if err != nil {
		return Session{}, err
	}
	if len(password) < minPasswordLen {
		return Session{}, &models.ValidationError{
			Field: "password",
			Msg:   fmt.Sprintf("must be at least %d characters", minPasswordLen),
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}
	u := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := l.store.CreateUser(ctx, &u); err != nil {
		return Session{}, err
	}
	l.log.Info().Str("user_id", u.ID).Msg("User signed up")
	return l.issue(u)
}

func (l *Local) SignIn(ctx context.Context, email, password string) (Session, error) {
	email, err := credentials(email, password)
	if err != nil {
		return Session{}, err
	}

	u, err := l.store.UserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		l.log.Warn().Str("user_id", u.ID).Msg("Wrong password")
		return Session{}, ErrInvalidCredentials
	}
	return l.issue(u)
}

// SignOut revokes the token. Signing out an already revoked token is fine.
func (l *Local) SignOut(ctx context.Context, token string) error {
	c, err := l.parse(token)
	if err != nil {
		return err
	}
	if err := l.store.RevokeSession(ctx, c.ID, c.ExpiresAt.Time); err != nil {
		return err
	}
	l.log.Info().Str("user_id", c.Subject).Msg("User signed out")
	return nil
}

// Verify checks the signature, expiry and revocation of token.
func (l *Local) Verify(ctx context.Context, token string) (*Claims, error) {
	c, err := l.parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := l.store.SessionRevoked(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrBadToken
	}
	return c, nil
}

func (l *Local) issue(u models.User) (Session, error) {
	now := l.now()
	expires := now.Add(l.ttl)
	c := Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(l.secret)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return Session{UserID: u.ID, Email: u.Email, Token: tok, ExpiresAt: expires.Truncate(time.Second)}, nil
}

func (l *Local) parse(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return l.secret, nil
	}, jwt.WithTimeFunc(l.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.ID == "" {
		return nil, ErrBadToken
	}
	return c, nil
}

func credentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", &models.ValidationError{Field: "email", Msg: "must not be empty"}
	}
	if strings.TrimSpace(password) == "" {
		return "", &models.ValidationError{Field: "password", Msg: "must not be empty"}
	}
	return email, nil
}
