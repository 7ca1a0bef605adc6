package service

import (
	"fmt"
	"time"

	"carcrm/models"
	"carcrm/utils"
)

func daysDuration(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

// tierPriority 意向等级到提醒优先级的映射
func tierPriority(tier models.CustomerTier) models.ReminderPriority {
	switch tier {
	case models.CustomerTierHOT:
		return models.ReminderPriorityHigh
	case models.CustomerTierWARM:
		return models.ReminderPriorityMedium
	default:
		return models.ReminderPriorityLow
	}
}

// RunAutoReminderScan 自动提醒扫描，返回本次生成的提醒数量
//
// 加载时执行一次，此后每次数据集变更落盘时再执行。
// 受冷却窗口保护：窗口内重复调用是空操作。无论是否生成了提醒，
// 扫描时间戳都会无条件刷新，窗口内不会反复重扫。
// 规则只作用于已分配、处于pipeline阶段的客户。
func (m *Manager) RunAutoReminderScan() int {
	m.scanning = true
	defer func() { m.scanning = false }()

	now := m.now()

	last, err := m.store.LastScanAt()
	if err != nil {
		utils.LogError(err, nil, "读取扫描时间失败，按从未扫描处理")
	}
	if !last.IsZero() && now.Sub(last) < m.cooldown {
		return 0
	}

	// 已有未完成自动提醒的客户不再重复生成
	hasOpenAuto := make(map[string]bool)
	for _, r := range m.data.Reminders {
		if r.IsAuto && !r.Completed {
			hasOpenAuto[r.CustomerID] = true
		}
	}

	var created []models.Reminder
	for _, c := range m.data.Customers {
		if c.OwnerUserID == "" {
			continue
		}
		status, ok := m.data.StatusByID(c.StatusID)
		if !ok || status.Kind != models.StatusKindPipeline {
			continue
		}
		days := m.tierDays[c.Tier]
		if days <= 0 {
			continue
		}

		deadline := c.LastContactAt.Add(daysDuration(days))
		if !now.After(deadline) || hasOpenAuto[c.ID] {
			continue
		}

		created = append(created, models.Reminder{
			ID:          utils.NewID("rem"),
			CustomerID:  c.ID,
			OwnerUserID: c.OwnerUserID,
			Title:       fmt.Sprintf("跟进提醒: %s", c.Name),
			Description: fmt.Sprintf("客户 %s (%s) 已超过 %d 天未联系，请尽快跟进", c.Name, c.Tier, days),
			DueAt:       now,
			Priority:    tierPriority(c.Tier),
			IsAuto:      true,
		})
	}

	// 整批追加后一次落盘
	if len(created) > 0 {
		m.data.Reminders = append(m.data.Reminders, created...)
		m.persist()
	}

	if err := m.store.SetLastScanAt(now); err != nil {
		utils.LogError(err, nil, "更新扫描时间失败")
	}

	if len(created) > 0 {
		utils.LogInfo(map[string]interface{}{"created": len(created)}, "自动提醒扫描完成")
		m.notifyf(fmt.Sprintf("已生成 %d 条跟进提醒", len(created)), "info")
	}
	return len(created)
}
