package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	JobKeyPrefix        = "job:%s"
	CompletionKeyPrefix = "user:%d:completion"
)

const (
	UserTTL       = 5 * time.Minute
	JobTTL        = 30 * time.Minute
	CompletionTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func JobKey(slug string) string {
	return fmt.Sprintf(JobKeyPrefix, slug)
}

func CompletionKey(userID uint) string {
	return fmt.Sprintf(CompletionKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, CompletionKey(userID))
}

func InvalidateJob(ctx context.Context, slug string) {
	Invalidate(ctx, JobKey(slug))
}
