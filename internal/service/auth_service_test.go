package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"venicelocal/internal/auth"
	"venicelocal/internal/catalog"
	"venicelocal/internal/db"
	apperrors "venicelocal/internal/errors"
	"venicelocal/internal/model"
	"venicelocal/internal/store"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	gormDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	st, err := store.New(gormDB)
	require.NoError(t, err)
	return st
}

func validSignUp() SignUpInput {
	return SignUpInput{
		Name:       "Pat Patron",
		Email:      "Pat@Example.com",
		Password:   "password123",
		Role:       "patron",
		HumanCheck: true,
		Challenge:  "venice",
	}
}

func TestAuthServiceSignUp(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*SignUpInput)
		existing   []model.User
		wantField  string
		storeToken bool
	}{
		{name: "successful registration", storeToken: true},
		{
			name:      "missing name",
			mutate:    func(in *SignUpInput) { in.Name = " " },
			wantField: "name",
		},
		{
			name:      "guest role not registrable",
			mutate:    func(in *SignUpInput) { in.Role = "guest" },
			wantField: "role",
		},
		{
			name:      "human check unchecked",
			mutate:    func(in *SignUpInput) { in.HumanCheck = false },
			wantField: "challenge",
		},
		{
			name:      "wrong challenge word",
			mutate:    func(in *SignUpInput) { in.Challenge = "NAPLES" },
			wantField: "challenge",
		},
		{
			name:      "email already registered",
			existing:  []model.User{{ID: "u1", Name: "First", Email: "pat@example.com", Role: model.RolePatron}},
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := catalog.New(tt.existing, nil, nil)
			st := newTestStore(t)
			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)
			if tt.storeToken {
				mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "pat@example.com", auth.RefreshTokenExpiry).Return(nil)
			}

			svc := NewAuthService(cat, st, jwtService, mockTokenStore)

			in := validSignUp()
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			user, tokens, err := svc.SignUp(context.Background(), in)

			if tt.wantField != "" {
				var ve *apperrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
				assert.Nil(t, user)
				assert.Len(t, cat.Users(), len(tt.existing), "no user may be created on failure")
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, "pat@example.com", user.Email, "email is normalized to lower case")
			assert.Equal(t, model.RolePatron, user.Role)
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotEqual(t, "password123", user.PasswordHash)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)

			// The user record was persisted.
			persisted, err := st.LoadUsers(context.Background())
			require.NoError(t, err)
			assert.Len(t, persisted, 1)

			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthServiceSignIn(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	require.NoError(t, err)
	registered := model.User{
		ID:           "u1",
		Name:         "Pat Patron",
		Email:        "pat@example.com",
		PasswordHash: string(hashed),
		Role:         model.RolePatron,
	}

	tests := []struct {
		name       string
		input      SignInInput
		wantField  string
		wantErr    error
		storeToken bool
	}{
		{
			name:       "successful login",
			input:      SignInInput{Email: "PAT@example.com", Password: "password123", BotAnswer: 5},
			storeToken: true,
		},
		{
			name:      "bot check failed",
			input:     SignInInput{Email: "pat@example.com", Password: "password123", BotAnswer: 4},
			wantField: "botAnswer",
		},
		{
			name:    "unknown email",
			input:   SignInInput{Email: "nobody@example.com", Password: "password123", BotAnswer: 5},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:    "wrong password",
			input:   SignInInput{Email: "pat@example.com", Password: "nope", BotAnswer: 5},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := catalog.New([]model.User{registered}, nil, nil)
			st := newTestStore(t)
			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)
			if tt.storeToken {
				mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, "u1", "pat@example.com", auth.RefreshTokenExpiry).Return(nil)
			}

			svc := NewAuthService(cat, st, jwtService, mockTokenStore)
			user, tokens, err := svc.SignIn(context.Background(), tt.input)

			if tt.wantField != "" {
				var ve *apperrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u1", user.ID)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestContinueAsGuest(t *testing.T) {
	cat := catalog.New(nil, nil, nil)
	st := newTestStore(t)
	svc := NewAuthService(cat, st, auth.NewJWTService("test-secret"), new(MockTokenStore))

	guest, accessToken, err := svc.ContinueAsGuest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.RoleGuest, guest.Role)
	assert.NotEmpty(t, accessToken)

	// Guests are never persisted.
	assert.Empty(t, cat.Users())
	persisted, err := st.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestUpdateAvatar(t *testing.T) {
	cat := catalog.New([]model.User{{ID: "u1", Name: "Pat", Email: "pat@example.com", Role: model.RolePatron}}, nil, nil)
	st := newTestStore(t)
	svc := NewAuthService(cat, st, auth.NewJWTService("test-secret"), new(MockTokenStore))
	ctx := context.Background()

	_, err := svc.UpdateAvatar(ctx, "guest", "https://example.com/a.png")
	assert.ErrorIs(t, err, apperrors.ErrGuestForbidden)

	_, err = svc.UpdateAvatar(ctx, "u1", "  ")
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "avatar", ve.Field)

	user, err := svc.UpdateAvatar(ctx, "u1", "https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", user.Avatar)

	persisted, err := st.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "https://example.com/a.png", persisted[0].Avatar)
}

func TestRefreshToken(t *testing.T) {
	registered := model.User{ID: "u1", Name: "Pat", Email: "pat@example.com", Role: model.RolePatron}
	cat := catalog.New([]model.User{registered}, nil, nil)
	st := newTestStore(t)
	jwtService := auth.NewJWTService("test-secret")

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(registered)
	require.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return("u1", "pat@example.com", nil)

	svc := NewAuthService(cat, st, jwtService, mockTokenStore)

	accessToken, err := svc.RefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	mockTokenStore.AssertExpectations(t)
}
