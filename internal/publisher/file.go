package publisher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lm16688/AI-DAILY/internal/news"
)

// FilePublisher 写最新文件和按逻辑日期归档的文件，两者都通过临时文件 + rename 原子替换
type FilePublisher struct {
	dir        string
	latestName string
	archiveDir string
}

func NewFilePublisher(dir, latestName, archiveDir string) *FilePublisher {
	if latestName == "" {
		latestName = "news.json"
	}
	if archiveDir == "" {
		archiveDir = "archive"
	}
	return &FilePublisher{dir: dir, latestName: latestName, archiveDir: archiveDir}
}

func (p *FilePublisher) Name() string { return "file" }

func (p *FilePublisher) LatestPath() string {
	return filepath.Join(p.dir, p.latestName)
}

// ArchivePath 同一逻辑日期的多次运行写同一个文件，后写者覆盖
func (p *FilePublisher) ArchivePath(date string) string {
	return filepath.Join(p.dir, p.archiveDir, date+".json")
}

func (p *FilePublisher) Publish(ctx context.Context, d *news.Digest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(d)
	if err != nil {
		return fmt.Errorf("encode digest: %w", err)
	}
	if err := writeAtomic(p.LatestPath(), data); err != nil {
		return err
	}
	if d.Meta.Date == "" {
		return nil
	}
	return writeAtomic(p.ArchivePath(d.Meta.Date), data)
}

// Latest 读取最新文件；文件不存在返回 ErrNoDigest
func (p *FilePublisher) Latest(ctx context.Context) (*news.Digest, error) {
	data, err := os.ReadFile(p.LatestPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDigest
	}
	if err != nil {
		return nil, err
	}
	d, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.LatestPath(), err)
	}
	return d, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename 成功后为 no-op

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
