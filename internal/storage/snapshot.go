package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/lm16688/AI-DAILY/internal/news"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 快照表只有一行，每次运行整体替换
const snapshotID = 1

// Snapshot 保存最近一次运行的 meta
type Snapshot struct {
	ID          uint           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	LastUpdated time.Time      `json:"lastUpdated"`
	Total       int            `json:"total"`
	IsFallback  bool           `json:"isFallback"`
	Sources     datatypes.JSON `gorm:"type:jsonb" json:"sources"`
	Date        string         `gorm:"size:10" json:"date"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// News 是快照中的一条新闻，Rank 即输出中的 id
type News struct {
	Rank     int    `gorm:"primaryKey;autoIncrement:false" json:"rank"`
	URLHash  string `gorm:"size:40;index" json:"urlHash"`
	Title    string `gorm:"size:512" json:"title"`
	URL      string `gorm:"size:1024" json:"url"`
	Source   string `gorm:"size:128;index" json:"source"`
	Category string `gorm:"size:16;index" json:"category"`
	Hot      bool   `gorm:"index" json:"hot"`
	Language string `gorm:"size:8" json:"language"`
	// 摘要在 processor 中已按 rune 截断到约 200 字符
	Summary       string         `gorm:"size:600" json:"summary"`
	PublishedDate string         `gorm:"size:10;index" json:"publishedDate"`
	Tags          datatypes.JSON `gorm:"type:jsonb" json:"tags"`

	CreatedAt time.Time `json:"createdAt"`
}

// ReplaceSnapshot 在一个事务内清空旧快照并写入新快照
func (s *Store) ReplaceSnapshot(ctx context.Context, d *news.Digest) error {
	if !s.HasDB() {
		return ErrNotConfigured
	}
	snap, rows, err := toRows(d)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&News{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return tx.Save(&snap).Error
	})
}

// LoadSnapshot 从数据库还原最近一次的 digest
func (s *Store) LoadSnapshot(ctx context.Context) (*news.Digest, error) {
	if !s.HasDB() {
		return nil, ErrNotConfigured
	}
	var snap Snapshot
	if err := s.DB.WithContext(ctx).First(&snap, snapshotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	var rows []News
	if err := s.DB.WithContext(ctx).Order("rank ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return fromRows(snap, rows)
}

func toRows(d *news.Digest) (Snapshot, []News, error) {
	sources, err := json.Marshal(d.Meta.Sources)
	if err != nil {
		return Snapshot{}, nil, err
	}
	snap := Snapshot{
		ID:          snapshotID,
		LastUpdated: d.Meta.LastUpdated,
		Total:       d.Meta.Total,
		IsFallback:  d.Meta.IsFallback,
		Sources:     datatypes.JSON(sources),
		Date:        d.Meta.Date,
	}

	rows := make([]News, 0, len(d.News))
	for _, it := range d.News {
		tags, err := json.Marshal(nonNil(it.Tags))
		if err != nil {
			return Snapshot{}, nil, err
		}
		rows = append(rows, News{
			Rank:          it.ID,
			URLHash:       hashURL(it.URL),
			Title:         truncateRunesDB(toValidUTF8(it.Title), 512),
			URL:           it.URL,
			Source:        truncateRunesDB(toValidUTF8(it.Source), 128),
			Category:      string(it.Category),
			Hot:           it.Hot,
			Language:      string(it.Language),
			Summary:       truncateRunesDB(toValidUTF8(it.Summary), 600),
			PublishedDate: it.Date,
			Tags:          datatypes.JSON(tags),
		})
	}
	return snap, rows, nil
}

func fromRows(snap Snapshot, rows []News) (*news.Digest, error) {
	var sources []string
	if len(snap.Sources) > 0 {
		if err := json.Unmarshal(snap.Sources, &sources); err != nil {
			return nil, err
		}
	}
	items := make([]news.Item, 0, len(rows))
	for _, r := range rows {
		var tags []string
		if len(r.Tags) > 0 {
			if err := json.Unmarshal(r.Tags, &tags); err != nil {
				return nil, err
			}
		}
		items = append(items, news.Item{
			ID:       r.Rank,
			Category: news.Category(r.Category),
			Hot:      r.Hot,
			Title:    r.Title,
			Summary:  r.Summary,
			Source:   r.Source,
			Date:     r.PublishedDate,
			URL:      r.URL,
			Tags:     nonNil(tags),
			Language: news.Language(r.Language),
		})
	}
	return &news.Digest{
		Meta: news.Meta{
			LastUpdated: snap.LastUpdated,
			Total:       snap.Total,
			IsFallback:  snap.IsFallback,
			Sources:     nonNil(sources),
			Date:        snap.Date,
		},
		News: items,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func hashURL(url string) string {
	h := sha1.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}

// toValidUTF8 将字符串规范为合法 UTF-8，避免 PostgreSQL invalid byte sequence 错误
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// truncateRunesDB 按 rune 数截断，确保不超过字段长度；是对上游截断的双保险
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}
