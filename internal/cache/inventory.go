package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	VideoKeyPrefix      = "video:%d"
	VideoCommentsPrefix = "video:%d:comments"
)

const (
	UserTTL          = 5 * time.Minute
	VideoTTL         = 5 * time.Minute
	VideoCommentsTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func VideoKey(videoID uint) string {
	return fmt.Sprintf(VideoKeyPrefix, videoID)
}

func VideoCommentsKey(videoID uint) string {
	return fmt.Sprintf(VideoCommentsPrefix, videoID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateVideo(ctx context.Context, videoID uint) {
	Invalidate(ctx, VideoKey(videoID))
	Invalidate(ctx, VideoCommentsKey(videoID))
}
