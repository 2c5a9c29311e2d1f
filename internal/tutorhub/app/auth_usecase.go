// Package app содержит сценарии использования tutorhub.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/domain/services"
	"tutorhub/internal/tutorhub/metrics"
	"tutorhub/internal/tutorhub/ports/repositories"
	svc "tutorhub/internal/tutorhub/ports/services"
	"tutorhub/pkg/logger"
)

const (
	methodSignup        = "Signup"
	methodLogin         = "Login"
	methodRefreshTokens = "RefreshTokens"
	methodLogout        = "Logout"

	operationSignup  = "signup"
	operationLogin   = "login"
	operationRefresh = "refresh"

	msgStartSignup        = "starting user signup"
	msgInvalidEmailFormat = "invalid email format"
	msgEmptyName          = "empty name provided"
	msgEmptyPassword      = "empty password provided"
	msgInvalidUserType    = "invalid user type"
	msgInvalidPassword    = "password rejected by hasher"
	msgUserExists         = "user with this email and type already exists"
	msgUserSignedUp       = "user signed up successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginUnknownUser   = "login attempt for unknown user"
	msgLoginWrongPassword = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"
	msgRefreshingTokens   = "refreshing tokens"
	msgRefreshRejected    = "refresh token rejected"
	msgTokensRefreshed    = "tokens refreshed successfully"
	msgUserLoggedOut      = "logout requested, tokens stay valid until expiry"

	msgErrHashPassword   = "failed to hash password"
	msgErrCreateUser     = "failed to create user"
	msgErrIssueTokens    = "failed to issue tokens"
	msgErrFindingUser    = "error finding user"
	msgErrRefreshFailure = "unexpected refresh failure"

	errCtxValidatingEmail    = "validating email"
	errCtxValidatingName     = "validating name"
	errCtxValidatingPassword = "validating password"
	errCtxValidatingUserType = "validating user type"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxIssuingTokens      = "issuing tokens"
	errCtxFindingUser        = "finding user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxRefreshingTokens   = "refreshing tokens"
)

// AuthUseCaseImpl реализует api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает сервис аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) *AuthUseCaseImpl {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Signup регистрирует пользователя и сразу выдает пару токенов.
func (a *AuthUseCaseImpl) Signup(
	ctx context.Context,
	email, name, password string,
	userType entities.UserType,
) (*services.TokenPair, error) {
	email = entities.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	log := logger.Log(ctx).With(
		zap.String("method", methodSignup),
		zap.String("email", email),
		zap.String("userType", userType.String()),
	)
	log.Debug(ctx, msgStartSignup)

	if err := entities.ValidateEmail(email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat)
		metrics.RecordAuthOperation(operationSignup, metrics.OutcomeInvalid)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if name == "" {
		log.Debug(ctx, msgEmptyName)
		metrics.RecordAuthOperation(operationSignup, metrics.OutcomeInvalid)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyName)
	}
	if password == "" {
		log.Debug(ctx, msgEmptyPassword)
		metrics.RecordAuthOperation(operationSignup, metrics.OutcomeInvalid)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrEmptyPassword)
	}
	if !userType.Valid() {
		log.Debug(ctx, msgInvalidUserType)
		metrics.RecordAuthOperation(operationSignup, metrics.OutcomeInvalid)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserType, entities.ErrInvalidUserType)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			log.Debug(ctx, msgInvalidPassword, zap.Error(err))
			metrics.RecordAuthOperation(operationSignup, metrics.OutcomeInvalid)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
		}
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		metrics.RecordAuthOperation(operationSignup, metrics.OutcomeError)
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, &entities.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
		UserType:     userType,
	})
	if err != nil {
		if errors.Is(err, entities.ErrUserAlreadyExists) {
			log.Debug(ctx, msgUserExists)
			metrics.RecordAuthOperation(operationSignup, metrics.OutcomeDuplicate)
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, services.ErrDuplicateUser)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		metrics.RecordAuthOperation(operationSignup, metrics.OutcomeError)
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	pair, err := a.tokenSvc.IssuePair(ctx, services.Identity{Email: created.Email, UserType: created.UserType})
	if err != nil {
		log.Error(ctx, msgErrIssueTokens, zap.Error(err))
		metrics.RecordAuthOperation(operationSignup, metrics.OutcomeError)
		return nil, fmt.Errorf("%s: %w", errCtxIssuingTokens, err)
	}

	log.Info(ctx, msgUserSignedUp, zap.String("userID", created.ID))
	metrics.RecordAuthOperation(operationSignup, metrics.OutcomeSuccess)
	return pair, nil
}

// Login проверяет учетные данные. Неизвестный пользователь и неверный пароль неразличимы.
func (a *AuthUseCaseImpl) Login(
	ctx context.Context,
	email, password string,
	userType entities.UserType,
) (*services.TokenPair, error) {
	email = entities.NormalizeEmail(email)

	log := logger.Log(ctx).With(
		zap.String("method", methodLogin),
		zap.String("email", email),
		zap.String("userType", userType.String()),
	)
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindOne(ctx, email, userType)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			_ = a.passwordSvc.Verify(ctx, password, "")
			log.Debug(ctx, msgLoginUnknownUser)
			metrics.RecordAuthOperation(operationLogin, metrics.OutcomeRejected)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrAuthenticationFailed)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		metrics.RecordAuthOperation(operationLogin, metrics.OutcomeError)
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if !a.passwordSvc.Verify(ctx, password, user.PasswordHash) {
		log.Debug(ctx, msgLoginWrongPassword)
		metrics.RecordAuthOperation(operationLogin, metrics.OutcomeRejected)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrAuthenticationFailed)
	}

	pair, err := a.tokenSvc.IssuePair(ctx, services.Identity{Email: user.Email, UserType: user.UserType})
	if err != nil {
		log.Error(ctx, msgErrIssueTokens, zap.Error(err))
		metrics.RecordAuthOperation(operationLogin, metrics.OutcomeError)
		return nil, fmt.Errorf("%s: %w", errCtxIssuingTokens, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	metrics.RecordAuthOperation(operationLogin, metrics.OutcomeSuccess)
	return pair, nil
}

// Logout ничего не отзывает: токены остаются действительными до истечения срока.
func (a *AuthUseCaseImpl) Logout(ctx context.Context) error {
	logger.Log(ctx).With(zap.String("method", methodLogout)).Info(ctx, msgUserLoggedOut)
	return nil
}

// RefreshTokens выдает новую пару по refresh токену. Любой отказ оборачивает services.ErrInvalidToken.
func (a *AuthUseCaseImpl) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefreshTokens))
	log.Debug(ctx, msgRefreshingTokens)

	pair, err := a.tokenSvc.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			log.Debug(ctx, msgRefreshRejected, zap.Error(err))
			metrics.RecordAuthOperation(operationRefresh, metrics.OutcomeRejected)
			return nil, fmt.Errorf("%s: %w", errCtxRefreshingTokens, err)
		}
		log.Warn(ctx, msgErrRefreshFailure, zap.Error(err))
		metrics.RecordAuthOperation(operationRefresh, metrics.OutcomeRejected)
		return nil, fmt.Errorf("%s: %w: %w", errCtxRefreshingTokens, services.ErrInvalidToken, err)
	}

	log.Debug(ctx, msgTokensRefreshed)
	metrics.RecordAuthOperation(operationRefresh, metrics.OutcomeSuccess)
	return pair, nil
}
