package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/ports/cache"
	"docscan/internal/scanner/ports/services"
	"docscan/internal/scanner/resilience"
	"docscan/internal/scanner/session"
	"docscan/pkg/logger"
)

// ProfileCacheKeyPrefix - префикс ключей кэша профилей.
const ProfileCacheKeyPrefix = "profile:"

const (
	methodFetchUser = "FetchUser"

	msgProfileFromCache = "user profile found in cache"
	msgProfileFetched   = "user profile fetched"

	msgErrFetchProfile = "failed to fetch user profile"
	msgErrCacheProfile = "failed to cache user profile"

	errCtxResolvingUser  = "resolving user id"
	errCtxFetchingUser   = "fetching user profile"
	errCtxInvalidateUser = "invalidating cached profile"
)

// UserUseCase читает профиль пользователя с бэкенда через кэш.
type UserUseCase struct {
	client *session.Client
	codec  services.TokenCodec
	cache  cache.Cache
	ttl    time.Duration
	retry  *resilience.Retry
}

// NewUserUseCase создает сценарий профиля. cache может быть nil.
func NewUserUseCase(client *session.Client, codec services.TokenCodec, profileCache cache.Cache, ttl time.Duration) *UserUseCase {
	cfg := resilience.DefaultRetryConfig()
	cfg.ShouldRetry = shouldRetryBackend

	return &UserUseCase{
		client: client,
		codec:  codec,
		cache:  profileCache,
		ttl:    ttl,
		retry:  resilience.NewRetry("user-profile", cfg),
	}
}

// ResolveUserID возвращает uid, а если он пуст, то идентификатор из текущего access токена.
func (u *UserUseCase) ResolveUserID(uid string) (string, error) {
	if uid != "" {
		return uid, nil
	}
	pair := u.client.Session()
	if pair == nil {
		return "", entities.ErrUnknownUser
	}
	sub, ok := u.codec.DecodeSubject(pair.AccessToken)
	if !ok {
		return "", entities.ErrUnknownUser
	}
	return sub, nil
}

// FetchUser возвращает профиль пользователя uid или текущего пользователя, если uid пуст.
func (u *UserUseCase) FetchUser(ctx context.Context, uid string) (*entities.UserInfo, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFetchUser))

	uid, err := u.ResolveUserID(uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxResolvingUser, err)
	}
	log = log.With(zap.String("userID", uid))

	if cached := u.fromCache(ctx, uid); cached != nil {
		log.Debug(ctx, msgProfileFromCache)
		return cached, nil
	}

	info, err := resilience.Do(ctx, u.retry, func() (*entities.UserInfo, error) {
		resp, err := u.client.Request(ctx, http.MethodGet, "/oidc_userinfo/"+uid+"/")
		if err != nil {
			return nil, err
		}
		var info entities.UserInfo
		if err := session.DecodeJSON(resp, &info); err != nil {
			return nil, err
		}
		return &info, nil
	})
	if err != nil {
		log.Error(ctx, msgErrFetchProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}

	normalizeUser(info, uid)
	u.toCache(ctx, uid, info)

	log.Debug(ctx, msgProfileFetched)
	return info, nil
}

// InvalidateUser удаляет профиль из кэша.
func (u *UserUseCase) InvalidateUser(ctx context.Context, uid string) error {
	if u.cache == nil || uid == "" {
		return nil
	}
	if err := u.cache.Delete(ctx, ProfileCacheKeyPrefix+uid); err != nil {
		return fmt.Errorf("%s: %w", errCtxInvalidateUser, err)
	}
	return nil
}

func (u *UserUseCase) fromCache(ctx context.Context, uid string) *entities.UserInfo {
	if u.cache == nil {
		return nil
	}
	raw, err := u.cache.Get(ctx, ProfileCacheKeyPrefix+uid)
	if err != nil || raw == "" {
		return nil
	}
	var info entities.UserInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil
	}
	return &info
}

func (u *UserUseCase) toCache(ctx context.Context, uid string, info *entities.UserInfo) {
	if u.cache == nil {
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := u.cache.Set(ctx, ProfileCacheKeyPrefix+uid, string(data), u.ttl); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheProfile, zap.Error(err))
	}
}

// normalizeUser подставляет значения по умолчанию для отсутствующих полей.
func normalizeUser(info *entities.UserInfo, uid string) {
	if info.UserID == 0 {
		if id, err := strconv.ParseInt(uid, 10, 64); err == nil {
			info.UserID = id
		}
	}
	if info.Groups == nil {
		info.Groups = []string{}
	}
}
