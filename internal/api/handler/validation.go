package handler

import (
    "strings"

    "github.com/gin-gonic/gin/binding"
    "github.com/go-playground/validator/v10"

    "github.com/xiangyu-lab/discover-feed/internal/model"
)

// 注册自定义绑定校验。typelist：逗号分隔的内容类型列表，每项必须是已知类型
func init() {
    v, ok := binding.Validator.Engine().(*validator.Validate)
    if !ok {
        return
    }
    _ = v.RegisterValidation("typelist", func(fl validator.FieldLevel) bool {
        for _, t := range strings.Split(fl.Field().String(), ",") {
            switch t {
            case model.ContentTypeImage, model.ContentTypeVideo, model.ContentTypeText:
            default:
                return false
            }
        }
        return true
    })
}
