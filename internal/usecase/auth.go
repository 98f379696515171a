package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/skycastapp/skycast-api/internal/domain"
	"github.com/skycastapp/skycast-api/internal/email"
	"github.com/skycastapp/skycast-api/internal/repository"
)

const (
	defaultJWTTTL = 7 * 24 * time.Hour
	bcryptCost    = 12
)

type AuthUsecase struct {
	users  repository.UserRepository
	email  email.Sender
	jwtKey []byte
	jwtTTL time.Duration
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, jwtKey []byte, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		email:  emailSender,
		jwtKey: jwtKey,
		jwtTTL: defaultJWTTTL,
		logger: logger.With("component", "auth_usecase"),
	}
}

type SignupInput struct {
	Name     string
	Age      int
	Email    string
	Password string
}

// Signup creates the user with a bcrypt-hashed password and returns a signed
// JWT. A failed welcome email is logged, never surfaced.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Age:          input.Age,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	subject := "Welcome to SkyCast"
	body := fmt.Sprintf("<p>Hi %s, your SkyCast account is ready. Start saving your favorite cities!</p>", user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.Warn("welcome email not sent", "email", user.Email, "error", err)
	}

	return u.signToken(user)
}

// Login verifies email+password. Unknown email and wrong password collapse
// into ErrInvalidCredentials so responses never enumerate accounts.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return u.signToken(user)
}

func (u *AuthUsecase) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.jwtTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
