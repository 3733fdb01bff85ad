package service

import (
    "context"
    "time"

    "go.uber.org/zap"

    "github.com/xiangyu-lab/discover-feed/internal/repository"
    "github.com/xiangyu-lab/discover-feed/pkg/logger"
)

// ViewRecorder 浏览计数的本地异步执行器。
// 浏览量大且单次价值低，不值得在读路径上同步写库；
// 队列满时丢弃，计数允许欠计不允许多计。
type ViewRecorder struct {
    contents repository.ContentRepository
    ch       chan string
}

func NewViewRecorder(contents repository.ContentRepository, queueSize int) *ViewRecorder {
    if queueSize <= 0 {
        queueSize = 10000
    }
    return &ViewRecorder{contents: contents, ch: make(chan string, queueSize)}
}

// Start 启动 workers 个消费协程；返回停止函数
func (r *ViewRecorder) Start(workers int) func(context.Context) error {
    if workers <= 0 {
        workers = 2
    }
    stopCh := make(chan struct{})
    for i := 0; i < workers; i++ {
        go func() {
            for {
                select {
                case contentID := <-r.ch:
                    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
                    if err := r.contents.IncrementCounter(ctx, contentID, "view", 1); err != nil {
                        logger.Warn("view increment failed", zap.String("content", contentID), zap.Error(err))
                    }
                    cancel()
                case <-stopCh:
                    return
                }
            }
        }()
    }
    return func(ctx context.Context) error {
        close(stopCh)
        // 等待队列自然排空一小段时间
        timeout := time.After(2 * time.Second)
        for {
            select {
            case <-timeout:
                return nil
            default:
                if len(r.ch) == 0 {
                    return nil
                }
                time.Sleep(50 * time.Millisecond)
            }
        }
    }
}

func (r *ViewRecorder) Enqueue(contentID string) {
    select {
    case r.ch <- contentID:
    default:
        logger.Warn("view recorder queue full, drop", zap.String("content", contentID))
    }
}

// QueueLen 返回当前队列长度（采样值）
func (r *ViewRecorder) QueueLen() int { return len(r.ch) }
