package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tutorhub/internal/tutorhub/app"
	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/domain/services"
)

func TestResolve(t *testing.T) {
	user := &entities.User{ID: "u1", Email: "a@x.com", Name: "Alice", UserType: entities.UserTypeClient}
	accessClaims := &services.TokenClaims{
		Identity: services.Identity{Email: "a@x.com", UserType: entities.UserTypeClient},
		Kind:     services.TokenKindAccess,
	}

	tests := []struct {
		name       string
		token      string
		setupMocks func(repo *mockUserRepository, tokens *mockTokenService)
		wantUser   *entities.User
		wantErr    error
	}{
		{
			name:  "success - user resolved",
			token: "access",
			setupMocks: func(repo *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, "access").Return(accessClaims, nil).Once()
				repo.On("FindOne", mock.Anything, "a@x.com", entities.UserTypeClient).Return(user, nil).Once()
			},
			wantUser: user,
		},
		{
			name:       "error - empty token",
			setupMocks: func(*mockUserRepository, *mockTokenService) {},
			wantErr:    services.ErrUnauthenticated,
		},
		{
			name:  "error - invalid token",
			token: "garbage",
			setupMocks: func(_ *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, "garbage").Return(nil, services.ErrInvalidToken).Once()
			},
			wantErr: services.ErrUnauthenticated,
		},
		{
			name:  "error - malformed claims",
			token: "no-type",
			setupMocks: func(_ *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, "no-type").Return(nil, services.ErrMalformedClaims).Once()
			},
			wantErr: services.ErrUnauthenticated,
		},
		{
			name:  "error - refresh token used as bearer",
			token: "refresh",
			setupMocks: func(_ *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, "refresh").Return(&services.TokenClaims{
					Identity: accessClaims.Identity,
					Kind:     services.TokenKindRefresh,
				}, nil).Once()
			},
			wantErr: services.ErrUnauthenticated,
		},
		{
			name:  "error - user deleted after issuance",
			token: "access",
			setupMocks: func(repo *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, "access").Return(accessClaims, nil).Once()
				repo.On("FindOne", mock.Anything, "a@x.com", entities.UserTypeClient).
					Return(nil, entities.ErrUserNotFound).Once()
			},
			wantErr: services.ErrUnauthenticated,
		},
		{
			name:  "error - storage failure propagates",
			token: "access",
			setupMocks: func(repo *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, "access").Return(accessClaims, nil).Once()
				repo.On("FindOne", mock.Anything, "a@x.com", entities.UserTypeClient).
					Return(nil, errDatabaseConnection).Once()
			},
			wantErr: errDatabaseConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			tokens := new(mockTokenService)
			tt.setupMocks(repo, tokens)

			resolver := app.NewSessionUseCase(repo, tokens)
			got, err := resolver.Resolve(context.Background(), tt.token)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, got)
			}

			repo.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestResolveStorageFailureIsNotUnauthenticated(t *testing.T) {
	repo := new(mockUserRepository)
	tokens := new(mockTokenService)
	tokens.On("Verify", mock.Anything, "access").Return(&services.TokenClaims{
		Identity: services.Identity{Email: "a@x.com", UserType: entities.UserTypeTutor},
		Kind:     services.TokenKindAccess,
	}, nil).Once()
	repo.On("FindOne", mock.Anything, "a@x.com", entities.UserTypeTutor).Return(nil, errDatabaseConnection).Once()

	_, err := app.NewSessionUseCase(repo, tokens).Resolve(context.Background(), "access")

	require.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrUnauthenticated)
}
