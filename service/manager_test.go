package service_test

import (
	"os"
	"testing"
	"time"

	"carcrm/models"
	"carcrm/repository"
	"carcrm/service"
	"carcrm/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

var testNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func day(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// testPayload 固定ID的测试数据集
func testPayload(now time.Time) *models.StoredPayload {
	users := []models.User{
		{ID: "u_admin", Username: "admin", Password: "admin123", Role: models.UserRoleADMIN, DisplayName: "店长", CreatedAt: now},
		{ID: "u_wang", Username: "wangqiang", Password: "123456", Role: models.UserRoleSALES, DisplayName: "王强", CreatedAt: now},
		{ID: "u_li", Username: "lihong", Password: "123456", Role: models.UserRoleSALES, DisplayName: "李红", CreatedAt: now},
	}

	statuses := []models.Status{
		{ID: "status1", Name: "新线索", Color: "#1890ff", Order: 1, Kind: models.StatusKindPipeline},
		{ID: "status2", Name: "意向跟进", Color: "#faad14", Order: 2, Kind: models.StatusKindPipeline},
		{ID: "status4", Name: "已下订", Color: "#52c41a", Order: 4, Kind: models.StatusKindWin},
		{ID: "status5", Name: "已交车", Color: "#13c2c2", Order: 5, Kind: models.StatusKindDelivery},
		{ID: "status6", Name: "战败", Color: "#bfbfbf", Order: 6, Kind: models.StatusKindLostSale},
	}

	customers := []models.Customer{
		{
			ID: "c1", Name: "张伟", Phone: "13800000001", Email: "zhangwei@example.com",
			CarModel: "MG HS", Source: "线上咨询", StatusID: "status1", City: "上海",
			SalesValue: 165000, Tier: models.CustomerTierHOT,
			CreatedAt: now.Add(-day(10)), LastContactAt: now.Add(-day(1)),
			Interactions: []models.Interaction{}, OwnerUserID: "u_wang",
		},
		{
			ID: "c2", Name: "李娜", Phone: "13800000002",
			CarModel: "MG ZS", Source: "到店", StatusID: "status2", City: "苏州",
			SalesValue: 98000, Tier: models.CustomerTierWARM,
			CreatedAt: now.Add(-day(12)), LastContactAt: now.Add(-day(2)),
			Interactions: []models.Interaction{}, OwnerUserID: "u_li",
		},
		{
			ID: "c3", Name: "王芳", Phone: "13800000003",
			CarModel: "MG7", Source: "车展", StatusID: "status5", City: "上海",
			SalesValue: 212000, Tier: models.CustomerTierHOT,
			CreatedAt: now.Add(-day(30)), LastContactAt: now.Add(-day(3)),
			Interactions: []models.Interaction{}, OwnerUserID: "u_wang",
		},
		{
			ID: "c4", Name: "赵磊", Phone: "13800000004",
			CarModel: "MG HS", Source: "车展", StatusID: "status1",
			SalesValue: 158000, Tier: models.CustomerTierCOLD,
			CreatedAt: now.Add(-day(15)), LastContactAt: now.Add(-day(9)),
			Interactions: []models.Interaction{}, OwnerUserID: "",
		},
		{
			ID: "c5", Name: "陈静", Phone: "13800000005",
			CarModel: "Cyberster", Source: "线上咨询", StatusID: "status6", City: "杭州",
			SalesValue: 0, Tier: models.CustomerTierLOST,
			CreatedAt: now.Add(-day(40)), LastContactAt: now.Add(-day(20)),
			Interactions: []models.Interaction{}, OwnerUserID: "u_li",
		},
	}

	reminders := []models.Reminder{
		{ID: "r1", CustomerID: "c1", OwnerUserID: "u_wang", Title: "邀约张伟到店", DueAt: now.Add(day(1)), Priority: models.ReminderPriorityMedium},
		{ID: "r2", CustomerID: "c2", OwnerUserID: "u_li", Title: "给李娜报价", DueAt: now.Add(day(2)), Priority: models.ReminderPriorityLow},
	}

	return &models.StoredPayload{
		Users: users,
		Dataset: models.CrmData{
			Customers: customers,
			Reminders: reminders,
			Statuses:  statuses,
			CarModels: []models.CarModel{
				{ID: "car1", Name: "MG HS"},
				{ID: "car2", Name: "MG ZS"},
			},
			Sources: []models.CustomerSource{
				{ID: "src1", Name: "线上咨询"},
				{ID: "src2", Name: "到店"},
				{ID: "src3", Name: "车展"},
			},
			MarketingSpends: []models.MarketingSpend{
				{ID: "spend1", Name: "线上咨询", Amount: 50000},
				{ID: "spend2", Name: "车展", Amount: 100000},
			},
		},
	}
}

// newTestManager 构造测试管理器
// 预置扫描时间为当前时刻，启动时的自动扫描在冷却窗口内不生效
func newTestManager(t *testing.T) (*service.Manager, *repository.MemStore) {
	t.Helper()
	store := repository.NewMemStore()
	require.NoError(t, store.Save(testPayload(testNow)))
	require.NoError(t, store.SetLastScanAt(testNow))

	m := service.NewManager(store, service.Options{
		Clock: func() time.Time { return testNow },
	})
	return m, store
}

func loginAs(t *testing.T, m *service.Manager, username, password string) *models.User {
	t.Helper()
	user, err := m.Login(username, password)
	require.NoError(t, err)
	m.SetSession(user)
	return user
}

func TestNewManagerSeedsEmptyStore(t *testing.T) {
	store := repository.NewMemStore()
	m := service.NewManager(store, service.Options{})

	assert.NotEmpty(t, m.Data().Customers)
	assert.NotEmpty(t, m.Users())

	// 种子数据应当已经落盘
	saved, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, len(m.Data().Customers), len(saved.Dataset.Customers))
}

func TestSelectionTracksCustomers(t *testing.T) {
	m, _ := newTestManager(t)
	loginAs(t, m, "admin", "admin123")

	m.Select("c1", "c2", "c3")
	assert.ElementsMatch(t, []string{"c1", "c2", "c3"}, m.SelectedIDs())

	m.Deselect("c2")
	assert.ElementsMatch(t, []string{"c1", "c3"}, m.SelectedIDs())

	m.ClearSelection()
	assert.Empty(t, m.SelectedIDs())
}

func TestSetSessionClearsSelection(t *testing.T) {
	m, _ := newTestManager(t)
	admin := loginAs(t, m, "admin", "admin123")
	m.Select("c1")

	m.SetSession(admin)
	assert.Empty(t, m.SelectedIDs())
}

func TestPersistFailureDoesNotPanic(t *testing.T) {
	m, store := newTestManager(t)
	loginAs(t, m, "admin", "admin123")

	store.SaveErr = assert.AnError

	// 保存失败只记日志，变更仍然生效
	_, err := m.UpdateCustomer("c1", models.CustomerPatch{City: strPtr("北京")})
	require.NoError(t, err)
	assert.Equal(t, "北京", m.Data().Customers[0].City)
}

func strPtr(s string) *string { return &s }
