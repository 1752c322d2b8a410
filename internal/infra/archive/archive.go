// Package archive は実行済み注文をDBの外に書き出す。
//
// ドライバは2つ:
//   - "local" ローカルファイル（デフォルト）
//   - "s3"    S3互換ストレージ（AWS S3, MinIO, R2）
//
// どちらも注文IDから決まるキー "<prefix>/<order_id>.json" に1件1ファイルで書く。
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"

	"ordermgr/internal/config"
	"ordermgr/internal/domain/model"
)

var (
	// 書き込み失敗（ディスクフル、権限、パスなし、S3エラー）
	ErrWrite = errors.New("archive write failed")

	ErrNotFound = errors.New("archive not found")
)

// Sink は実行済み注文の保存先
type Sink interface {
	// 同じ注文IDで呼ぶと上書き（再実行で2回書かれてもよい）
	Archive(ctx context.Context, rec model.OrderArchive) (string, error)
	Fetch(ctx context.Context, orderID int64) (model.OrderArchive, error)
}

// 注文IDからファイル名を決める
func objectName(orderID int64) string {
	return strconv.FormatInt(orderID, 10) + ".json"
}

func objectKey(prefix string, orderID int64) string {
	if prefix == "" {
		return objectName(orderID)
	}
	return path.Join(prefix, objectName(orderID))
}

func encode(rec model.OrderArchive) ([]byte, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("archive: encode order %d: %w", rec.OrderID, err)
	}
	return b, nil
}

func decode(orderID int64, b []byte) (model.OrderArchive, error) {
	var rec model.OrderArchive
	if err := json.Unmarshal(b, &rec); err != nil {
		return model.OrderArchive{}, fmt.Errorf("archive: decode order %d: %w", orderID, err)
	}
	return rec, nil
}

// New は設定からドライバを選ぶ
func New(ctx context.Context, cfg config.ArchiveConfig) (Sink, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalSink(cfg.Dir)
	case "s3":
		return NewS3Sink(ctx, cfg.Dir, cfg.S3)
	default:
		return nil, fmt.Errorf("archive: unsupported driver %q (local, s3)", cfg.Driver)
	}
}
