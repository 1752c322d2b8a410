// Package dbtest はテスト用のSQLite（メモリ）を用意する
package dbtest

import (
	"fmt"
	"testing"

	"ordermgr/internal/config"
	"ordermgr/internal/infra/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open はテストごとに別のメモリDBを作り、テーブルも作っておく
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	gdb, err := db.Open(config.DBConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
