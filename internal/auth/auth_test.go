package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"noticeboard/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindBySubject(ctx context.Context, subject string) (*model.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken("kakao_42", "멍멍이", time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "kakao_42", claims.Subject)
	assert.Equal(t, "멍멍이", claims.Nickname)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("other-secret").GenerateAccessToken("kakao_42", "", time.Minute)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret")
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "kakao_42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsUnsignedToken(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "kakao_42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret").ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestIdentityResolver_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		subject   string
		setupMock func(*MockUserRepository)
		wantUser  bool
		wantErr   bool
	}{
		{
			name:      "empty subject is anonymous",
			subject:   "",
			setupMock: func(m *MockUserRepository) {},
		},
		{
			name:    "known subject",
			subject: "kakao_42",
			setupMock: func(m *MockUserRepository) {
				m.On("FindBySubject", mock.Anything, "kakao_42").Return(&model.User{ID: 7, UserID: "kakao_42"}, nil)
			},
			wantUser: true,
		},
		{
			name:    "unknown subject is anonymous",
			subject: "ghost",
			setupMock: func(m *MockUserRepository) {
				m.On("FindBySubject", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name:    "store failure",
			subject: "kakao_42",
			setupMock: func(m *MockUserRepository) {
				m.On("FindBySubject", mock.Anything, "kakao_42").Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			user, err := NewIdentityResolver(repo).Resolve(context.Background(), tt.subject)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantUser, user != nil)
			repo.AssertExpectations(t)
		})
	}
}
