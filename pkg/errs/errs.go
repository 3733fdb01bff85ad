package errs

import (
    "errors"
    "fmt"
)

// 引擎统一错误分类。上层按类别映射 HTTP 状态码：
// InvalidArgument/NotFound 不重试直接透出；Conflict 内部有限重试后透出；
// Unavailable 原样透出，不做降级回退。
var (
    ErrInvalidArgument = errors.New("invalid argument")
    ErrNotFound        = errors.New("not found")
    ErrConflict        = errors.New("conflict")
    ErrUnavailable     = errors.New("unavailable")
)

// InvalidArgumentf 构造带说明的参数错误
func InvalidArgumentf(format string, args ...any) error {
    return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// NotFoundf 构造带说明的未找到错误
func NotFoundf(format string, args ...any) error {
    return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Unavailablef 包装底层存储错误
func Unavailablef(err error) error {
    if err == nil {
        return nil
    }
    return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool        { return errors.Is(err, ErrConflict) }
func IsUnavailable(err error) bool     { return errors.Is(err, ErrUnavailable) }
