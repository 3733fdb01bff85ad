package cache

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    "github.com/redis/go-redis/v9"
)

const (
    scoreKeyPrefix = "feed:score:"
    defaultTTL     = 24 * time.Hour
)

// ScoreSnapshot 热度分与计数的“最近一次计算值”。
// 显式旁路缓存：计数变更路径写入，读路径仅用于响应装配，
// 排序永远消费存储里的 hot_score，不用缓存兜底。
type ScoreSnapshot struct {
    HotScore     float64   `json:"hot_score"`
    LikeCount    int64     `json:"like_count"`
    CollectCount int64     `json:"collect_count"`
    ComputedAt   time.Time `json:"computed_at"`
}

// ScoreCache 热度分旁路缓存
type ScoreCache struct {
    rdb *redis.Client
    ttl time.Duration
}

func NewScoreCache(rdb *redis.Client) *ScoreCache {
    return &ScoreCache{rdb: rdb, ttl: defaultTTL}
}

func key(contentID string) string { return fmt.Sprintf("%s%s", scoreKeyPrefix, contentID) }

// Put 写入最新快照（计数变更路径调用）
func (c *ScoreCache) Put(ctx context.Context, contentID string, snap ScoreSnapshot) error {
    payload, err := json.Marshal(snap)
    if err != nil {
        return err
    }
    return c.rdb.Set(ctx, key(contentID), payload, c.ttl).Err()
}

// Get 单条读取；miss 返回 (nil, nil)
func (c *ScoreCache) Get(ctx context.Context, contentID string) (*ScoreSnapshot, error) {
    data, err := c.rdb.Get(ctx, key(contentID)).Bytes()
    if err == redis.Nil {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    var snap ScoreSnapshot
    if err := json.Unmarshal(data, &snap); err != nil {
        return nil, err
    }
    return &snap, nil
}

// GetBatch 批量读取一页内容的快照，单次 MGET；miss 的条目不在返回 map 中
func (c *ScoreCache) GetBatch(ctx context.Context, contentIDs []string) (map[string]ScoreSnapshot, error) {
    if len(contentIDs) == 0 {
        return map[string]ScoreSnapshot{}, nil
    }
    keys := make([]string, len(contentIDs))
    for i, id := range contentIDs {
        keys[i] = key(id)
    }
    vals, err := c.rdb.MGet(ctx, keys...).Result()
    if err != nil {
        return nil, err
    }
    out := make(map[string]ScoreSnapshot, len(contentIDs))
    for i, v := range vals {
        if v == nil {
            continue
        }
        str, ok := v.(string)
        if !ok {
            continue
        }
        var snap ScoreSnapshot
        if uErr := json.Unmarshal([]byte(str), &snap); uErr == nil {
            out[contentIDs[i]] = snap
        }
    }
    return out, nil
}
