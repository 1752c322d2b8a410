package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ordermgr/internal/domain/model"

	"github.com/google/uuid"
)

// LocalSink はローカルのディレクトリに書く
type LocalSink struct {
	root string
}

// rootは起動時に作る。あとで消えた場合はArchiveがErrWriteを返す
func NewLocalSink(root string) (*LocalSink, error) {
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("archive/local: getwd: %w", err)
		}
		root = filepath.Join(cwd, root)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: archive/local: mkdir %s: %v", ErrWrite, root, err)
	}
	return &LocalSink{root: root}, nil
}

func (s *LocalSink) Root() string { return s.root }

func (s *LocalSink) path(orderID int64) string {
	return filepath.Join(s.root, objectName(orderID))
}

// 一時ファイルに書いてからrenameする（途中で落ちても半端なファイルを残さない）
func (s *LocalSink) Archive(ctx context.Context, rec model.OrderArchive) (string, error) {
	b, err := encode(rec)
	if err != nil {
		return "", err
	}

	final := s.path(rec.OrderID)
	tmp := filepath.Join(s.root, "."+objectName(rec.OrderID)+"."+uuid.NewString()+".tmp")

	if err := writeFileSync(tmp, b); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("%w: archive/local: write %s: %v", ErrWrite, tmp, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("%w: archive/local: rename %s: %v", ErrWrite, final, err)
	}
	return final, nil
}

func (s *LocalSink) Fetch(ctx context.Context, orderID int64) (model.OrderArchive, error) {
	b, err := os.ReadFile(s.path(orderID))
	if errors.Is(err, fs.ErrNotExist) {
		return model.OrderArchive{}, ErrNotFound
	}
	if err != nil {
		return model.OrderArchive{}, fmt.Errorf("archive/local: read order %d: %w", orderID, err)
	}
	return decode(orderID, b)
}

func writeFileSync(name string, b []byte) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
