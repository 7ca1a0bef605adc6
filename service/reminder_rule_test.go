package service_test

import (
	"testing"
	"time"

	"carcrm/models"
	"carcrm/repository"
	"carcrm/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScanManager 可控时钟的管理器
// 返回的时间指针用于推进时钟，构造时数据集中没有过期客户，启动扫描不产生提醒
func newScanManager(t *testing.T) (*service.Manager, *repository.MemStore, *time.Time) {
	t.Helper()
	store := repository.NewMemStore()
	require.NoError(t, store.Save(testPayload(testNow)))

	now := testNow
	m := service.NewManager(store, service.Options{
		Clock: func() time.Time { return now },
	})
	require.Empty(t, autoReminders(m))
	return m, store, &now
}

func autoReminders(m *service.Manager) []models.Reminder {
	var out []models.Reminder
	for _, r := range m.Data().Reminders {
		if r.IsAuto {
			out = append(out, r)
		}
	}
	return out
}

func setLastContact(m *service.Manager, customerID string, at time.Time) {
	for i := range m.Data().Customers {
		if m.Data().Customers[i].ID == customerID {
			m.Data().Customers[i].LastContactAt = at
			return
		}
	}
}

func TestAutoReminderHotStaleCustomer(t *testing.T) {
	m, _, now := newScanManager(t)

	// HOT客户4天未联系，超过3天阈值
	setLastContact(m, "c1", testNow.Add(-day(4)))
	*now = testNow.Add(13 * time.Hour)

	created := m.RunAutoReminderScan()
	assert.Equal(t, 1, created)

	auto := autoReminders(m)
	require.Len(t, auto, 1)
	r := auto[0]
	assert.Equal(t, "c1", r.CustomerID)
	assert.Equal(t, "u_wang", r.OwnerUserID)
	assert.Equal(t, models.ReminderPriorityHigh, r.Priority)
	assert.True(t, r.IsAuto)
	assert.False(t, r.Completed)
	assert.Equal(t, *now, r.DueAt)
	assert.Contains(t, r.Title, "张伟")
}

func TestAutoReminderIdempotentWithinCooldown(t *testing.T) {
	m, _, now := newScanManager(t)

	setLastContact(m, "c1", testNow.Add(-day(4)))
	*now = testNow.Add(13 * time.Hour)
	assert.Equal(t, 1, m.RunAutoReminderScan())

	// 冷却窗口内重复执行是空操作
	*now = now.Add(time.Hour)
	assert.Equal(t, 0, m.RunAutoReminderScan())
	assert.Len(t, autoReminders(m), 1)
}

func TestAutoReminderDedupeAgainstOpenAuto(t *testing.T) {
	m, _, now := newScanManager(t)

	setLastContact(m, "c1", testNow.Add(-day(4)))
	*now = testNow.Add(13 * time.Hour)
	assert.Equal(t, 1, m.RunAutoReminderScan())

	// 冷却结束后客户依旧过期，但未完成的自动提醒还在，不重复生成
	*now = now.Add(13 * time.Hour)
	assert.Equal(t, 0, m.RunAutoReminderScan())
	assert.Len(t, autoReminders(m), 1)
}

func TestAutoReminderRegeneratesAfterCompletion(t *testing.T) {
	m, _, now := newScanManager(t)

	setLastContact(m, "c1", testNow.Add(-day(4)))
	*now = testNow.Add(13 * time.Hour)
	assert.Equal(t, 1, m.RunAutoReminderScan())

	// 完成自动提醒后，下个窗口重新生成
	auto := autoReminders(m)
	require.Len(t, auto, 1)
	_, ok := m.ToggleReminderComplete(auto[0].ID)
	require.True(t, ok)

	*now = now.Add(13 * time.Hour)
	assert.Equal(t, 1, m.RunAutoReminderScan())
	assert.Len(t, autoReminders(m), 2)
}

func TestAutoReminderSkipsUnassignedAndNonPipeline(t *testing.T) {
	m, _, now := newScanManager(t)

	// c4未分配且早已过期，c3已交车且过期，都不应生成提醒
	setLastContact(m, "c4", testNow.Add(-day(30)))
	setLastContact(m, "c3", testNow.Add(-day(30)))
	*now = testNow.Add(13 * time.Hour)

	assert.Equal(t, 0, m.RunAutoReminderScan())
}

func TestAutoReminderLostTierNeverFires(t *testing.T) {
	m, _, now := newScanManager(t)

	// 流失等级的提醒天数为0，永不自动提醒
	for i := range m.Data().Customers {
		if m.Data().Customers[i].ID == "c1" {
			m.Data().Customers[i].Tier = models.CustomerTierLOST
		}
	}
	setLastContact(m, "c1", testNow.Add(-day(60)))
	*now = testNow.Add(13 * time.Hour)

	assert.Equal(t, 0, m.RunAutoReminderScan())
}

func TestAutoReminderTimestampUpdatedEvenWhenIdle(t *testing.T) {
	m, store, now := newScanManager(t)

	// 无过期客户也要刷新扫描时间，窗口内不反复重扫
	*now = testNow.Add(13 * time.Hour)
	assert.Equal(t, 0, m.RunAutoReminderScan())

	last, err := store.LastScanAt()
	require.NoError(t, err)
	assert.Equal(t, (*now).UnixMilli(), last.UnixMilli())
}

func TestAutoReminderWarmAndColdPriorities(t *testing.T) {
	m, _, now := newScanManager(t)

	// WARM超5天、COLD超7天分别映射medium和low
	setLastContact(m, "c2", testNow.Add(-day(6)))
	for i := range m.Data().Customers {
		if m.Data().Customers[i].ID == "c4" {
			m.Data().Customers[i].OwnerUserID = "u_wang"
		}
	}
	setLastContact(m, "c4", testNow.Add(-day(8)))
	*now = testNow.Add(13 * time.Hour)

	assert.Equal(t, 2, m.RunAutoReminderScan())

	priorities := make(map[string]models.ReminderPriority)
	for _, r := range autoReminders(m) {
		priorities[r.CustomerID] = r.Priority
	}
	assert.Equal(t, models.ReminderPriorityMedium, priorities["c2"])
	assert.Equal(t, models.ReminderPriorityLow, priorities["c4"])
}

func TestMutationTriggersAutoReminderScan(t *testing.T) {
	m, _, now := newScanManager(t)

	// HOT客户过期，冷却窗口已过，变更另一个客户也要带出扫描
	setLastContact(m, "c1", testNow.Add(-day(4)))
	*now = testNow.Add(13 * time.Hour)

	_, err := m.UpdateCustomer("c2", models.CustomerPatch{City: strPtr("南京")})
	require.NoError(t, err)

	auto := autoReminders(m)
	require.Len(t, auto, 1)
	assert.Equal(t, "c1", auto[0].CustomerID)

	// 窗口内的后续变更不再重扫
	setLastContact(m, "c1", testNow.Add(-day(8)))
	_, err = m.UpdateCustomer("c2", models.CustomerPatch{City: strPtr("无锡")})
	require.NoError(t, err)
	assert.Len(t, autoReminders(m), 1)
}
