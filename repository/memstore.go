package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"carcrm/models"
)

// MemStore 内存存储实现，测试用
type MemStore struct {
	payload []byte
	scanAt  time.Time

	// 强制Save失败，用于验证保存失败只记日志不上抛
	SaveErr error
}

// NewMemStore 创建空的内存存储
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load 反序列化返回独立副本，避免调用方与存储共享内存
func (s *MemStore) Load() (*models.StoredPayload, error) {
	if s.payload == nil {
		return nil, nil
	}
	var payload models.StoredPayload
	if err := json.Unmarshal(s.payload, &payload); err != nil {
		return nil, fmt.Errorf("解析内存数据失败: %w", err)
	}
	return &payload, nil
}

// Save 序列化保存
func (s *MemStore) Save(payload *models.StoredPayload) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化内存数据失败: %w", err)
	}
	s.payload = raw
	return nil
}

// LastScanAt 读取扫描时间
func (s *MemStore) LastScanAt() (time.Time, error) {
	return s.scanAt, nil
}

// SetLastScanAt 写入扫描时间
func (s *MemStore) SetLastScanAt(t time.Time) error {
	s.scanAt = t
	return nil
}
