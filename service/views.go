package service

import (
	"sort"
	"strings"
	"time"

	"carcrm/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// OwnerFilterAll 管理员查看全部客户
const OwnerFilterAll = "all"

// 允许的分页大小
var allowedPageSizes = map[int]bool{10: true, 20: true, 50: true}

// SortState 当前排序状态
type SortState struct {
	Key  string
	Desc bool
}

// NextSort 点击列头的切换约定：新列升序，同列翻转方向
func NextSort(current SortState, key string) SortState {
	if current.Key == key {
		return SortState{Key: key, Desc: !current.Desc}
	}
	return SortState{Key: key, Desc: false}
}

// CustomerQuery 列表视图查询参数
// 作用域、搜索词或排序键变化时调用方必须把Page重置为1，这是显式契约
type CustomerQuery struct {
	OwnerFilter string // 仅管理员生效，""或"all"表示全部
	Search      string
	Sort        SortState
	Page        int
	PageSize    int
}

// CustomerPage 分页结果
type CustomerPage struct {
	Items    []models.Customer
	Total    int
	Page     int
	PageSize int
}

var collator = collate.New(language.Chinese)

// VisibleCustomers 视图推导管线：归属过滤 → 搜索 → 排序 → 分页
func (m *Manager) VisibleCustomers(q CustomerQuery) CustomerPage {
	list := m.scopedCustomers(q.OwnerFilter)
	list = filterCustomers(list, q.Search)
	m.sortCustomers(list, q.Sort)

	total := len(list)
	pageSize := q.PageSize
	if !allowedPageSizes[pageSize] {
		pageSize = m.pageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= total {
		// 超出末页返回空页而不是报错
		return CustomerPage{Items: []models.Customer{}, Total: total, Page: page, PageSize: pageSize}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return CustomerPage{Items: list[start:end], Total: total, Page: page, PageSize: pageSize}
}

// scopedCustomers 归属过滤：非管理员只能看到自己的客户
// 返回副本，排序不会打乱底层数据集
func (m *Manager) scopedCustomers(ownerFilter string) []models.Customer {
	if m.session == nil {
		return []models.Customer{}
	}

	out := make([]models.Customer, 0, len(m.data.Customers))
	for _, c := range m.data.Customers {
		if m.isAdmin() {
			if ownerFilter != "" && ownerFilter != OwnerFilterAll && c.OwnerUserID != ownerFilter {
				continue
			}
		} else if c.OwnerUserID != m.session.ID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// filterCustomers 大小写不敏感的子串搜索，命中任一字段即保留
func filterCustomers(list []models.Customer, term string) []models.Customer {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}

	out := list[:0]
	for _, c := range list {
		if matchesSearch(&c, term) {
			out = append(out, c)
		}
	}
	return out
}

func matchesSearch(c *models.Customer, term string) bool {
	for _, field := range []string{c.Name, c.Phone, c.CarModel, c.Source, c.City} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// sortValue 取排序键对应的值，第二个返回值表示该值是否存在
// owner键按解析出的显示名排序而不是原始ID
func (m *Manager) sortValue(c *models.Customer, key string) (interface{}, bool) {
	switch key {
	case "name":
		return c.Name, c.Name != ""
	case "phone":
		return c.Phone, c.Phone != ""
	case "email":
		return c.Email, c.Email != ""
	case "carModel":
		return c.CarModel, c.CarModel != ""
	case "source":
		return c.Source, c.Source != ""
	case "city":
		return c.City, c.City != ""
	case "tier":
		return string(c.Tier), c.Tier != ""
	case "status":
		s, ok := m.data.StatusByID(c.StatusID)
		return float64(s.Order), ok
	case "salesValue":
		return c.SalesValue, true
	case "createdAt":
		return c.CreatedAt, !c.CreatedAt.IsZero()
	case "lastContactAt":
		return c.LastContactAt, !c.LastContactAt.IsZero()
	case "owner":
		name := m.userDisplayName(c.OwnerUserID)
		return name, name != ""
	default:
		return nil, false
	}
}

// sortCustomers 稳定排序，缺失值无论方向始终排在最后
func (m *Manager) sortCustomers(list []models.Customer, state SortState) {
	if state.Key == "" {
		return
	}

	sort.SliceStable(list, func(i, j int) bool {
		av, aok := m.sortValue(&list[i], state.Key)
		bv, bok := m.sortValue(&list[j], state.Key)
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}

		cmp := 0
		switch a := av.(type) {
		case string:
			cmp = collator.CompareString(a, bv.(string))
		case float64:
			b := bv.(float64)
			if a < b {
				cmp = -1
			} else if a > b {
				cmp = 1
			}
		case time.Time:
			b := bv.(time.Time)
			if a.Before(b) {
				cmp = -1
			} else if a.After(b) {
				cmp = 1
			}
		}

		if state.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// KanbanLane 看板泳道
type KanbanLane struct {
	Status    models.Status
	Customers []models.Customer
}

// KanbanBoard 看板视图
// 公海客户单列一条泳道且仅管理员可见，不混入按归属过滤的泳道
type KanbanBoard struct {
	Lanes      []KanbanLane
	Unassigned []models.Customer
}

// Kanban 构建看板：阶段按order排列，泳道内只有已分配客户
func (m *Manager) Kanban(ownerFilter, search string) KanbanBoard {
	statuses := make([]models.Status, len(m.data.Statuses))
	copy(statuses, m.data.Statuses)
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Order < statuses[j].Order
	})

	scoped := m.scopedCustomers(ownerFilter)
	scoped = filterCustomers(scoped, search)

	byStatus := make(map[string][]models.Customer)
	for _, c := range scoped {
		if c.OwnerUserID == "" {
			continue
		}
		byStatus[c.StatusID] = append(byStatus[c.StatusID], c)
	}

	board := KanbanBoard{Lanes: make([]KanbanLane, 0, len(statuses))}
	for _, s := range statuses {
		board.Lanes = append(board.Lanes, KanbanLane{Status: s, Customers: byStatus[s.ID]})
	}

	if m.isAdmin() {
		term := strings.ToLower(strings.TrimSpace(search))
		for _, c := range m.data.Customers {
			if c.OwnerUserID != "" {
				continue
			}
			if term != "" && !matchesSearch(&c, term) {
				continue
			}
			board.Unassigned = append(board.Unassigned, c)
		}
	}
	return board
}

// VisibleReminders 角色过滤后的提醒列表，按到期时间升序
func (m *Manager) VisibleReminders(includeCompleted bool) []models.Reminder {
	if m.session == nil {
		return []models.Reminder{}
	}

	out := make([]models.Reminder, 0, len(m.data.Reminders))
	for _, r := range m.data.Reminders {
		if !m.isAdmin() && r.OwnerUserID != m.session.ID {
			continue
		}
		if !includeCompleted && r.Completed {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out
}
