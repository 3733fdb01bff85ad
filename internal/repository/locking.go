package repository

import (
    "gorm.io/gorm"
    "gorm.io/gorm/clause"
)

// lockForUpdate 行级锁：同一键上的并发切换由数据库串行化。
// sqlite 不支持 FOR UPDATE，其写入本身单写者串行，直接跳过。
func lockForUpdate(tx *gorm.DB) *gorm.DB {
    if tx.Dialector.Name() == "sqlite" {
        return tx
    }
    return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
