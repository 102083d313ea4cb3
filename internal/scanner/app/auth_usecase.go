package app

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/ports/repositories"
	"docscan/internal/scanner/ports/services"
	"docscan/internal/scanner/session"
	"docscan/pkg/logger"
)

const (
	methodLogin        = "Login"
	methodLogout       = "Logout"
	methodRestore      = "Restore"
	methodSessionEnded = "HandleSessionEnded"

	msgLoginAttempt     = "login attempt"
	msgUserLoggedIn     = "user logged in successfully"
	msgUserLoggedOut    = "user logged out"
	msgSessionRestored  = "session restored"
	msgNoStoredSession  = "no stored session"
	msgSessionEnded     = "session ended by backend, logging out"
	msgRestoreDiscarded = "stored session discarded: profile unavailable"

	msgErrLoginRequest  = "login request failed"
	msgErrSaveTokens    = "failed to save tokens"
	msgErrClearTokens   = "failed to clear tokens"
	msgErrInvalidateKey = "failed to invalidate cached profile"

	errCtxValidatingCredentials = "validating credentials"
	errCtxLoginRequest          = "requesting tokens"
	errCtxSavingTokens          = "saving tokens"
	errCtxLoadingProfile        = "loading user profile"
	errCtxLoadingSession        = "loading session"
	errCtxClearingTokens        = "clearing tokens"
)

// AuthUseCase управляет входом и выходом и хранит профиль текущего пользователя.
type AuthUseCase struct {
	client *session.Client
	store  repositories.CredentialStore
	codec  services.TokenCodec
	users  *UserUseCase

	mu   sync.RWMutex
	user *entities.UserInfo
}

// NewAuthUseCase создает сценарий авторизации и подписывает его на завершение сессии.
func NewAuthUseCase(
	client *session.Client,
	store repositories.CredentialStore,
	codec services.TokenCodec,
	users *UserUseCase,
) *AuthUseCase {
	a := &AuthUseCase{
		client: client,
		store:  store,
		codec:  codec,
		users:  users,
	}
	client.Notifier().OnLogout(a.HandleSessionEnded)
	return a
}

// Login получает пару токенов, сохраняет ее и загружает профиль пользователя.
func (a *AuthUseCase) Login(ctx context.Context, req *dto.LoginRequest) (*entities.UserInfo, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", req.Username))
	log.Debug(ctx, msgLoginAttempt)

	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingCredentials, entities.ErrEmptyCredentials)
	}

	resp, err := a.client.Request(ctx, http.MethodPost, session.LoginPath,
		session.WithoutAuth(),
		session.WithJSON(req))
	if err != nil {
		log.Error(ctx, msgErrLoginRequest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoginRequest, err)
	}

	var tokens dto.LoginResponse
	if err := session.DecodeJSON(resp, &tokens); err != nil {
		log.Warn(ctx, msgErrLoginRequest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoginRequest, err)
	}
	if tokens.Access == "" || tokens.Refresh == "" {
		return nil, fmt.Errorf("%s: %w", errCtxLoginRequest, entities.ErrInvalidLogin)
	}

	pair := &entities.TokenPair{AccessToken: tokens.Access, RefreshToken: tokens.Refresh}
	if exp, ok := a.codec.DecodeExpiry(tokens.Access); ok {
		pair.AccessExp = exp
	}

	if err := a.store.Save(ctx, pair); err != nil {
		log.Error(ctx, msgErrSaveTokens, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSavingTokens, err)
	}
	a.client.SetSession(pair)

	user, err := a.users.FetchUser(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingProfile, err)
	}
	a.setUser(user)

	log.Info(ctx, msgUserLoggedIn, zap.Int64("userID", user.UserID))
	return user, nil
}

// Logout очищает сохраненные токены, сессию в памяти и профиль.
func (a *AuthUseCase) Logout(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	uid, _ := a.users.ResolveUserID("")

	err := a.store.Clear(ctx)
	a.client.SetSession(nil)
	a.setUser(nil)

	if cacheErr := a.users.InvalidateUser(ctx, uid); cacheErr != nil {
		log.Warn(ctx, msgErrInvalidateKey, zap.Error(cacheErr))
	}

	if err != nil {
		log.Error(ctx, msgErrClearTokens, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxClearingTokens, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// Restore загружает сохраненную сессию при старте. Если профиль получить не удалось,
// сессия сбрасывается, и пользователь считается не вошедшим.
func (a *AuthUseCase) Restore(ctx context.Context) (*entities.UserInfo, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRestore))

	if err := a.client.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingSession, err)
	}
	if a.client.Session() == nil {
		log.Info(ctx, msgNoStoredSession)
		return nil, nil
	}

	user, err := a.users.FetchUser(ctx, "")
	if err != nil {
		log.Warn(ctx, msgRestoreDiscarded, zap.Error(err))
		if clearErr := a.store.Clear(ctx); clearErr != nil {
			log.Error(ctx, msgErrClearTokens, zap.Error(clearErr))
		}
		a.client.SetSession(nil)
		a.setUser(nil)
		return nil, nil
	}

	a.setUser(user)
	log.Info(ctx, msgSessionRestored, zap.Int64("userID", user.UserID))
	return user, nil
}

// ReloadUser перечитывает профиль текущего пользователя.
func (a *AuthUseCase) ReloadUser(ctx context.Context) (*entities.UserInfo, error) {
	uid, err := a.users.ResolveUserID("")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingProfile, err)
	}
	if err := a.users.InvalidateUser(ctx, uid); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrInvalidateKey, zap.Error(err))
	}

	user, err := a.users.FetchUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingProfile, err)
	}
	a.setUser(user)
	return user, nil
}

// CurrentUser возвращает копию профиля или nil, если пользователь не вошел.
func (a *AuthUseCase) CurrentUser() *entities.UserInfo {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.user == nil {
		return nil
	}
	u := *a.user
	u.Groups = append([]string(nil), a.user.Groups...)
	return &u
}

// HandleSessionEnded вызывается уведомителем, когда обновить токен не удалось.
func (a *AuthUseCase) HandleSessionEnded(ctx context.Context) {
	log := logger.Log(ctx).With(zap.String("method", methodSessionEnded))
	log.Warn(ctx, msgSessionEnded)

	// Сессия к этому моменту уже сброшена, uid берется из профиля.
	var uid string
	if user := a.CurrentUser(); user != nil {
		uid = strconv.FormatInt(user.UserID, 10)
	}

	a.setUser(nil)
	if err := a.store.Clear(ctx); err != nil {
		log.Error(ctx, msgErrClearTokens, zap.Error(err))
	}
	a.client.SetSession(nil)

	if err := a.users.InvalidateUser(ctx, uid); err != nil {
		log.Warn(ctx, msgErrInvalidateKey, zap.Error(err))
	}
}

func (a *AuthUseCase) setUser(u *entities.UserInfo) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}
