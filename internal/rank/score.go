package rank

import (
    "math"
    "time"
)

// 热度分权重
const (
    weightLike    = 2.0
    weightComment = 3.0
    weightShare   = 5.0
    weightView    = 0.1
)

// 衰减半衰期基数（小时）：decay = e^(-age/24)
const decayHours = 24.0

// Counters 互动计数快照
type Counters struct {
    Like    int64
    Comment int64
    Share   int64
    View    int64
}

// HotScore 计算热度分：加权计数 × 指数时间衰减。
// ageHours 为负（时钟偏移）按 0 处理，不给未来内容加成。
func HotScore(c Counters, ageHours float64) float64 {
    if ageHours < 0 {
        ageHours = 0
    }
    raw := float64(c.Like)*weightLike +
        float64(c.Comment)*weightComment +
        float64(c.Share)*weightShare +
        float64(c.View)*weightView
    return raw * math.Exp(-ageHours/decayHours)
}

// HotScoreAt 以 createdAt 与 now 计算内容年龄后求分
func HotScoreAt(c Counters, createdAt, now time.Time) float64 {
    return HotScore(c, now.Sub(createdAt).Hours())
}
