package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jaekwang-park/todo-dashboard/internal/cognito"
	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/repository"
)

const minPasswordLength = 6

// AuthService handles account registration and sessions.
type AuthService struct {
	cognitoClient cognito.Client
	userRepo      repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(cognitoClient cognito.Client, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cognitoClient: cognitoClient,
		userRepo:      userRepo,
	}
}

type Credentials struct {
	Email    string
	Password string
}

type SignUpOutput struct {
	UserSub      string `json:"user_sub"`
	Confirmed    bool   `json:"confirmed"`
	CodeDelivery string `json:"code_delivery"`
}

type ConfirmSignUpInput struct {
	Email string
	Code  string
}

type RefreshInput struct {
	Email        string
	RefreshToken string
}

type Session struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int32  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

func sessionFrom(t cognito.Tokens) Session {
	return Session{
		IDToken:      t.IDToken,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresIn:    t.ExpiresIn,
		TokenType:    t.TokenType,
	}
}

func (s *AuthService) SignUp(ctx context.Context, input Credentials) (SignUpOutput, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return SignUpOutput{}, err
	}
	if len(input.Password) < minPasswordLength {
		return SignUpOutput{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	out, err := s.cognitoClient.SignUp(ctx, cognito.SignUpInput{
		Email:    email,
		Password: input.Password,
	})
	if err != nil {
		return SignUpOutput{}, err
	}

	return SignUpOutput{
		UserSub:      out.UserSub,
		Confirmed:    out.Confirmed,
		CodeDelivery: out.CodeDelivery,
	}, nil
}

func (s *AuthService) ConfirmSignUp(ctx context.Context, input ConfirmSignUpInput) error {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return err
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	return s.cognitoClient.ConfirmSignUp(ctx, cognito.ConfirmSignUpInput{
		Email: email,
		Code:  code,
	})
}

func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	return s.cognitoClient.ResendConfirmationCode(ctx, email)
}

// SignIn authenticates against Cognito and makes sure a local user row
// exists for the token's subject.
func (s *AuthService) SignIn(ctx context.Context, input Credentials) (Session, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return Session{}, err
	}
	if input.Password == "" {
		return Session{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	tokens, err := s.cognitoClient.SignIn(ctx, cognito.SignInInput{
		Email:    email,
		Password: input.Password,
	})
	if err != nil {
		return Session{}, err
	}

	sub, err := extractSub(tokens.IDToken)
	if err != nil {
		return Session{}, fmt.Errorf("failed to extract sub from id token: %w", err)
	}
	if _, err := s.userRepo.GetOrCreate(ctx, sub, email); err != nil {
		return Session{}, fmt.Errorf("failed to get or create user: %w", err)
	}

	return sessionFrom(tokens), nil
}

func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (Session, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return Session{}, err
	}
	if input.RefreshToken == "" {
		return Session{}, fmt.Errorf("%w: refresh_token is required", ErrInvalidInput)
	}

	tokens, err := s.cognitoClient.RefreshTokens(ctx, cognito.RefreshInput{
		Email:        email,
		RefreshToken: input.RefreshToken,
	})
	if err != nil {
		return Session{}, err
	}
	return sessionFrom(tokens), nil
}

func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return fmt.Errorf("%w: access_token is required", ErrInvalidInput)
	}
	return s.cognitoClient.GlobalSignOut(ctx, accessToken)
}

// CurrentUser returns the local user behind an authenticated request.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, notFoundOr(err, "get user")
	}
	return u, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email is not a valid address", ErrInvalidInput)
	}
	return email, nil
}

// extractSub reads the "sub" claim of a token Cognito just issued to us.
// The signature is not checked here; the auth middleware does that on
// every subsequent request.
func extractSub(idToken string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return "", fmt.Errorf("parse id token: %w", err)
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("sub claim not found in id token")
	}
	return sub, nil
}
