package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"carcrm/models"
	"carcrm/utils"
)

// FileStore 基于本地JSON文件的存储实现，默认后端
type FileStore struct {
	dir string
}

// NewFileStore 创建文件存储，目录不存在时自动创建
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) dataPath() string {
	return filepath.Join(s.dir, DataKey+".json")
}

func (s *FileStore) scanPath() string {
	return filepath.Join(s.dir, LastScanKey)
}

// Load 读取完整载荷
func (s *FileStore) Load() (*models.StoredPayload, error) {
	raw, err := os.ReadFile(s.dataPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取数据文件失败: %w", err)
	}

	var payload models.StoredPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("解析数据文件失败: %w", err)
	}

	utils.LogStoreOperation("load", DataKey, len(payload.Dataset.Customers))
	return &payload, nil
}

// Save 整体写入，先写临时文件再改名，避免写一半的文件被当作有效数据
func (s *FileStore) Save(payload *models.StoredPayload) error {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化数据失败: %w", err)
	}

	tmp := s.dataPath() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("写入数据文件失败: %w", err)
	}
	if err := os.Rename(tmp, s.dataPath()); err != nil {
		return fmt.Errorf("替换数据文件失败: %w", err)
	}

	utils.LogStoreOperation("save", DataKey, len(raw))
	return nil
}

// LastScanAt 读取上次自动提醒扫描时间，文件不存在返回零值
func (s *FileStore) LastScanAt() (time.Time, error) {
	raw, err := os.ReadFile(s.scanPath())
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("读取扫描时间失败: %w", err)
	}

	millis, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("解析扫描时间失败: %w", err)
	}
	return time.UnixMilli(millis), nil
}

// SetLastScanAt 写入扫描时间，存毫秒时间戳
func (s *FileStore) SetLastScanAt(t time.Time) error {
	raw := strconv.FormatInt(t.UnixMilli(), 10)
	if err := os.WriteFile(s.scanPath(), []byte(raw), 0o644); err != nil {
		return fmt.Errorf("写入扫描时间失败: %w", err)
	}
	return nil
}
