package repository

import (
	"time"

	"carcrm/models"
	"carcrm/utils"
)

const (
	// 存储键名，沿用原系统的localStorage键
	DataKey     = "crm_app_data"
	LastScanKey = "crm_last_reminder_check"
)

// Store 持久化网关，整个数据集作为单一JSON载荷读写
// 扫描时间戳与主数据互相独立
type Store interface {
	Load() (*models.StoredPayload, error)
	Save(payload *models.StoredPayload) error

	// LastScanAt 零值时间表示从未扫描过
	LastScanAt() (time.Time, error)
	SetLastScanAt(t time.Time) error
}

// LoadOrSeed 加载数据，载荷缺失、损坏或客户列表为空时生成并立即持久化种子数据
func LoadOrSeed(store Store) *models.StoredPayload {
	payload, err := store.Load()
	if err != nil {
		utils.LogError(err, map[string]interface{}{"key": DataKey}, "读取存储数据失败，回退到种子数据")
	}

	if payload != nil && len(payload.Dataset.Customers) > 0 {
		utils.LogInfo(map[string]interface{}{
			"customers": len(payload.Dataset.Customers),
			"users":     len(payload.Users),
		}, "已加载存储数据")
		return payload
	}

	payload = SeedPayload(time.Now())
	if err := store.Save(payload); err != nil {
		utils.LogError(err, nil, "持久化种子数据失败")
	}
	utils.LogInfo(map[string]interface{}{
		"customers": len(payload.Dataset.Customers),
	}, "已生成种子数据")
	return payload
}
