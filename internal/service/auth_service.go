package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"venicelocal/internal/auth"
	"venicelocal/internal/catalog"
	"venicelocal/internal/errors"
	"venicelocal/internal/model"
	"venicelocal/internal/store"
)

const bcryptCost = 10

// signUpChallenge is the word a new user must type to pass the human
// check, and botCheckAnswer the expected result of the sign-in
// arithmetic puzzle (2 + 3). Both are deliberately trivial placeholders
// for real verification.
const (
	signUpChallenge = "VENICE"
	botCheckAnswer  = 5
)

// SignUpInput carries a registration request.
type SignUpInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	Avatar     string
	HumanCheck bool
	Challenge  string
}

// SignInInput carries a login request. BotAnswer is the user's answer to
// the arithmetic bot check.
type SignInInput struct {
	Email     string
	Password  string
	BotAnswer int
}

// TokenPair bundles the tokens issued on successful authentication.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles authentication operations.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*model.User, *TokenPair, error)
	SignIn(ctx context.Context, in SignInInput) (*model.User, *TokenPair, error)
	ContinueAsGuest(ctx context.Context) (model.User, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	UpdateAvatar(ctx context.Context, userID, avatar string) (*model.User, error)
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	catalog    *catalog.Catalog
	store      *store.Store
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(cat *catalog.Catalog, st *store.Store, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		catalog:    cat,
		store:      st,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// SignUp validates the registration form, enforces the human check and
// email uniqueness, and appends the new user with a hashed password.
func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*model.User, *TokenPair, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	password := strings.TrimSpace(in.Password)
	role := model.Role(strings.TrimSpace(in.Role))

	switch {
	case name == "":
		return nil, nil, errors.NewValidationError("name", "this field is required")
	case email == "":
		return nil, nil, errors.NewValidationError("email", "this field is required")
	case password == "":
		return nil, nil, errors.NewValidationError("password", "this field is required")
	case !role.Registrable():
		return nil, nil, errors.NewValidationError("role", "choose a role")
	}
	if !in.HumanCheck || strings.ToUpper(strings.TrimSpace(in.Challenge)) != signUpChallenge {
		return nil, nil, errors.NewValidationError("challenge", "verification failed: confirm you are human and type "+signUpChallenge)
	}
	if existing := s.catalog.UserByEmail(email); existing != nil {
		return nil, nil, errors.NewValidationError("email", "an account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Avatar:       strings.TrimSpace(in.Avatar),
	}
	if err := s.catalog.AddUser(user); err != nil {
		return nil, nil, err
	}
	if err := s.store.SaveUsers(ctx, s.catalog.Users()); err != nil {
		return nil, nil, fmt.Errorf("persist users: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return &user, tokens, nil
}

// SignIn authenticates a user after the arithmetic bot check.
func (s *authService) SignIn(ctx context.Context, in SignInInput) (*model.User, *TokenPair, error) {
	if in.BotAnswer != botCheckAnswer {
		return nil, nil, errors.NewValidationError("botAnswer", "bot check failed: 2 + 3 should equal 5")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user := s.catalog.UserByEmail(email)
	if user == nil {
		return nil, nil, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(in.Password))); err != nil {
		return nil, nil, errors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, *user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// ContinueAsGuest returns the transient guest identity with a browse-only
// access token. Nothing is persisted.
func (s *authService) ContinueAsGuest(ctx context.Context) (model.User, string, error) {
	guest := model.GuestUser()
	accessToken, err := s.jwtService.GenerateAccessToken(guest)
	if err != nil {
		return model.User{}, "", fmt.Errorf("generate guest token: %w", err)
	}
	return guest, accessToken, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", errors.ErrInvalidToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", errors.ErrInvalidToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", errors.ErrInvalidToken
	}

	user := s.catalog.UserByID(claims.UserID)
	if user == nil {
		return "", errors.ErrInvalidToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(*user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// UpdateAvatar replaces a user's profile photo. The avatar is an opaque
// string: a URL or a resolved inline data URL. Guests cannot update.
func (s *authService) UpdateAvatar(ctx context.Context, userID, avatar string) (*model.User, error) {
	if userID == model.GuestUser().ID {
		return nil, errors.ErrGuestForbidden
	}
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		return nil, errors.NewValidationError("avatar", "provide a photo URL or upload an image")
	}

	user, err := s.catalog.SetAvatar(userID, avatar)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveUsers(ctx, s.catalog.Users()); err != nil {
		return nil, fmt.Errorf("persist users: %w", err)
	}
	return user, nil
}

// CurrentUser resolves an authenticated identity, synthesizing the guest
// identity for guest tokens.
func (s *authService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == model.GuestUser().ID {
		guest := model.GuestUser()
		return &guest, nil
	}
	user := s.catalog.UserByID(userID)
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user model.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
