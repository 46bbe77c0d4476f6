package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"user-directory/app/server/constants"
	"user-directory/app/server/models"
	"user-directory/app/server/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedUsers keeps public user records in redis for FindByID. Redis failures are logged and the store answers.
type CachedUsers struct {
	Users
	rdb *redis.Client
	ttl time.Duration
	l   *zap.Logger
}

var _ Users = (*CachedUsers)(nil)

func NewCached(users Users, rdb *redis.Client, ttl time.Duration, l *zap.Logger) *CachedUsers {
	return &CachedUsers{Users: users, rdb: rdb, ttl: ttl, l: l}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf(constants.CacheKeyUserInfo, id)
}

func (r *CachedUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	key := cacheKey(id)

	// 查询缓存
	if cacheBytes, err := r.rdb.Get(ctx, key).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			r.l.Error("failed to query cache for user info", zap.Stringer("id", id), zap.Error(err))
		}
	} else {
		var user models.User
		if err = json.Unmarshal(cacheBytes, &user); err == nil {
			return &user, nil
		}
		r.l.Error("failed to unmarshal user info", zap.Stringer("id", id), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		r.rdb.Del(ctx, key)
	}

	// 查询数据库
	user, err := r.Users.FindByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}

	// 加入缓存，方便下一次查询
	if cacheBytes, err := json.Marshal(user); err != nil {
		r.l.Error("failed to marshal user info", zap.Stringer("id", id), zap.Error(err))
	} else if err = r.rdb.Set(ctx, key, cacheBytes, r.ttl).Err(); err != nil {
		r.l.Error("failed to cache user info", zap.Stringer("id", id), zap.Error(err))
	}

	return user, nil
}

func (r *CachedUsers) UpdatePartial(ctx context.Context, id uuid.UUID, fields validation.UserFields) (*models.User, error) {
	user, err := r.Users.UpdatePartial(ctx, id, fields)
	r.invalidate(ctx, id)
	return user, err
}

func (r *CachedUsers) DeleteByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := r.Users.DeleteByID(ctx, id)
	r.invalidate(ctx, id)
	return user, err
}

func (r *CachedUsers) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		r.l.Error("failed to invalidate user info", zap.Stringer("id", id), zap.Error(err))
	}
}
