package service

import (
	"time"

	"carcrm/models"
	"carcrm/repository"
	"carcrm/utils"
)

// 默认跟进节奏：各意向等级多少天未联系触发自动提醒，0表示不提醒
// LOST为0是业务策略，流失客户不再自动催跟进
var defaultTierReminderDays = map[models.CustomerTier]int{
	models.CustomerTierHOT:  3,
	models.CustomerTierWARM: 5,
	models.CustomerTierCOLD: 7,
	models.CustomerTierLOST: 0,
}

// DefaultScanCooldown 自动提醒扫描的冷却窗口
const DefaultScanCooldown = 12 * time.Hour

// NotifyFunc 宿主方提供的通知回调
type NotifyFunc func(message string, kind string)

// Options 管理器可选配置
type Options struct {
	Session          *models.User // 当前会话用户，由宿主方提供
	Notify           NotifyFunc
	Script           ScriptGenerator
	TierReminderDays map[models.CustomerTier]int
	ScanCooldown     time.Duration
	DefaultPageSize  int
	Clock            func() time.Time
}

// Manager 数据状态管理器
// 独占内存数据集，单会话串行执行，所有变更在本进程内完成后整体落盘，
// 因此不需要加锁
type Manager struct {
	store repository.Store

	users []models.User
	data  *models.CrmData

	session  *models.User
	notify   NotifyFunc
	script   ScriptGenerator
	tierDays map[models.CustomerTier]int
	cooldown time.Duration
	pageSize int
	now      func() time.Time

	// 批量操作用的当前选中集
	selection map[string]bool

	// 扫描过程自身的落盘不再触发扫描
	scanning bool
}

// NewManager 创建管理器：加载(或播种)数据后立即跑一次自动提醒扫描
func NewManager(store repository.Store, opts Options) *Manager {
	m := &Manager{
		store:     store,
		session:   opts.Session,
		notify:    opts.Notify,
		script:    opts.Script,
		tierDays:  opts.TierReminderDays,
		cooldown:  opts.ScanCooldown,
		pageSize:  opts.DefaultPageSize,
		now:       opts.Clock,
		selection: make(map[string]bool),
	}
	if m.tierDays == nil {
		m.tierDays = defaultTierReminderDays
	}
	if m.cooldown <= 0 {
		m.cooldown = DefaultScanCooldown
	}
	if m.pageSize <= 0 {
		m.pageSize = 10
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.script == nil {
		m.script = TemplateScriptGenerator{}
	}

	payload := repository.LoadOrSeed(store)
	m.users = payload.Users
	m.data = &payload.Dataset

	m.RunAutoReminderScan()
	return m
}

// SetSession 切换会话用户，登出传nil
func (m *Manager) SetSession(user *models.User) {
	m.session = user
	m.ClearSelection()
}

// Session 当前会话用户
func (m *Manager) Session() *models.User {
	return m.session
}

// Users 用户列表
func (m *Manager) Users() []models.User {
	return m.users
}

// Data 当前数据集，调用方只读
func (m *Manager) Data() *models.CrmData {
	return m.data
}

// persist 变更后整体落盘，失败只记日志不上抛
func (m *Manager) persist() {
	payload := &models.StoredPayload{Users: m.users, Dataset: *m.data}
	if err := m.store.Save(payload); err != nil {
		utils.LogError(err, map[string]interface{}{"key": repository.DataKey}, "保存数据失败")
	}
	// 数据集变更后补一次扫描，冷却期内为空操作
	if !m.scanning {
		m.RunAutoReminderScan()
	}
}

// notifyf 有回调时发通知
func (m *Manager) notifyf(message, kind string) {
	if m.notify != nil {
		m.notify(message, kind)
	}
}

// isAdmin 当前会话是否管理员
func (m *Manager) isAdmin() bool {
	return m.session != nil && m.session.Role == models.UserRoleADMIN
}

// findCustomer 按ID定位客户，返回索引
func (m *Manager) findCustomer(id string) int {
	for i := range m.data.Customers {
		if m.data.Customers[i].ID == id {
			return i
		}
	}
	return -1
}

// userDisplayName 解析用户显示名，找不到返回空串
func (m *Manager) userDisplayName(userID string) string {
	for _, u := range m.users {
		if u.ID == userID {
			return u.DisplayName
		}
	}
	return ""
}

// Select 加入选中集
func (m *Manager) Select(ids ...string) {
	for _, id := range ids {
		m.selection[id] = true
	}
}

// Deselect 移出选中集
func (m *Manager) Deselect(ids ...string) {
	for _, id := range ids {
		delete(m.selection, id)
	}
}

// ClearSelection 清空选中集
func (m *Manager) ClearSelection() {
	m.selection = make(map[string]bool)
}

// SelectedIDs 当前选中的客户ID
func (m *Manager) SelectedIDs() []string {
	ids := make([]string, 0, len(m.selection))
	for _, c := range m.data.Customers {
		if m.selection[c.ID] {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
