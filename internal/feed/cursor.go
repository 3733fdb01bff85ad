package feed

import (
    "encoding/base64"
    "encoding/json"

    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

// Cursor 分页游标：编码上一页末行的完整排序键元组，ID 兜底保证全序。
// 对外是不透明 token；缺失游标表示第一页。
type Cursor struct {
    Score     *float64 `json:"s,omitempty"`
    CreatedAt *int64   `json:"t,omitempty"` // UnixNano
    Distance  *float64 `json:"d,omitempty"`
    ID        string   `json:"id"`
}

// EncodeCursor 序列化为 URL 安全 token
func EncodeCursor(c Cursor) string {
    raw, _ := json.Marshal(c)
    return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor 解析游标并校验其携带 order 所需的全部排序键。
// 空串表示第一页；解析失败返回 InvalidArgument，客户端应重启分页，
// 不做“当第一页处理”的静默回退。
func DecodeCursor(token string, order Order) (*Cursor, error) {
    if token == "" {
        return nil, nil
    }
    raw, err := base64.RawURLEncoding.DecodeString(token)
    if err != nil {
        return nil, errs.InvalidArgumentf("malformed cursor")
    }
    var c Cursor
    if err := json.Unmarshal(raw, &c); err != nil {
        return nil, errs.InvalidArgumentf("malformed cursor")
    }
    if c.ID == "" {
        return nil, errs.InvalidArgumentf("malformed cursor: missing id")
    }
    switch order {
    case OrderHot:
        if c.Score == nil || c.CreatedAt == nil {
            return nil, errs.InvalidArgumentf("cursor does not match ordering")
        }
    case OrderLatest:
        if c.CreatedAt == nil {
            return nil, errs.InvalidArgumentf("cursor does not match ordering")
        }
    case OrderNearbyHot:
        if c.Score == nil || c.Distance == nil {
            return nil, errs.InvalidArgumentf("cursor does not match ordering")
        }
    case OrderNearbyDistance:
        if c.Distance == nil {
            return nil, errs.InvalidArgumentf("cursor does not match ordering")
        }
    default:
        return nil, errs.InvalidArgumentf("cursor does not match ordering")
    }
    return &c, nil
}
