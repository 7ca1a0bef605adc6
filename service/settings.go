package service

import (
	"sort"

	"carcrm/models"
	"carcrm/utils"
)

// 配置项按类型各自一套增删改，不再用动态结构的通用编辑器

// SaveStatus 新建或更新销售阶段，existingID为空表示新建
// 保存后阶段列表按order重排
func (m *Manager) SaveStatus(input models.StatusInput, existingID string) *models.Status {
	savedID := existingID
	if existingID != "" {
		found := false
		for i := range m.data.Statuses {
			if m.data.Statuses[i].ID != existingID {
				continue
			}
			s := &m.data.Statuses[i]
			s.Name = input.Name
			s.Color = input.Color
			s.Order = input.Order
			s.Kind = input.Kind
			found = true
			break
		}
		if !found {
			return nil
		}
	} else {
		savedID = utils.NewID("status")
		m.data.Statuses = append(m.data.Statuses, models.Status{
			ID:    savedID,
			Name:  input.Name,
			Color: input.Color,
			Order: input.Order,
			Kind:  input.Kind,
		})
	}

	sort.SliceStable(m.data.Statuses, func(i, j int) bool {
		return m.data.Statuses[i].Order < m.data.Statuses[j].Order
	})
	m.persist()

	// 重排会移动元素，按ID重新定位
	for i := range m.data.Statuses {
		if m.data.Statuses[i].ID == savedID {
			return &m.data.Statuses[i]
		}
	}
	return nil
}

// DeleteStatus 删除阶段，仍被客户引用的阶段不允许删除
func (m *Manager) DeleteStatus(id string) error {
	for _, c := range m.data.Customers {
		if c.StatusID == id {
			return utils.NewAppError("该阶段仍有客户，无法删除", "STATUS_IN_USE", nil)
		}
	}

	kept := m.data.Statuses[:0]
	for _, s := range m.data.Statuses {
		if s.ID == id {
			continue
		}
		kept = append(kept, s)
	}
	m.data.Statuses = kept
	m.persist()
	return nil
}

// SaveCarModel 新建或更新车型选项
func (m *Manager) SaveCarModel(input models.CarModelInput, existingID string) *models.CarModel {
	if existingID != "" {
		for i := range m.data.CarModels {
			if m.data.CarModels[i].ID == existingID {
				m.data.CarModels[i].Name = input.Name
				m.persist()
				return &m.data.CarModels[i]
			}
		}
		return nil
	}

	m.data.CarModels = append(m.data.CarModels, models.CarModel{
		ID:   utils.NewID("car"),
		Name: input.Name,
	})
	m.persist()
	return &m.data.CarModels[len(m.data.CarModels)-1]
}

// DeleteCarModel 删除车型选项
func (m *Manager) DeleteCarModel(id string) {
	kept := m.data.CarModels[:0]
	for _, cm := range m.data.CarModels {
		if cm.ID == id {
			continue
		}
		kept = append(kept, cm)
	}
	m.data.CarModels = kept
	m.persist()
}

// SaveSource 新建或更新客户来源选项
func (m *Manager) SaveSource(input models.SourceInput, existingID string) *models.CustomerSource {
	if existingID != "" {
		for i := range m.data.Sources {
			if m.data.Sources[i].ID == existingID {
				m.data.Sources[i].Name = input.Name
				m.persist()
				return &m.data.Sources[i]
			}
		}
		return nil
	}

	m.data.Sources = append(m.data.Sources, models.CustomerSource{
		ID:   utils.NewID("src"),
		Name: input.Name,
	})
	m.persist()
	return &m.data.Sources[len(m.data.Sources)-1]
}

// DeleteSource 删除客户来源选项
func (m *Manager) DeleteSource(id string) {
	kept := m.data.Sources[:0]
	for _, s := range m.data.Sources {
		if s.ID == id {
			continue
		}
		kept = append(kept, s)
	}
	m.data.Sources = kept
	m.persist()
}

// SaveMarketingSpend 新建或更新营销投入
func (m *Manager) SaveMarketingSpend(input models.MarketingSpendInput, existingID string) *models.MarketingSpend {
	if existingID != "" {
		for i := range m.data.MarketingSpends {
			if m.data.MarketingSpends[i].ID == existingID {
				m.data.MarketingSpends[i].Name = input.Name
				m.data.MarketingSpends[i].Amount = input.Amount
				m.persist()
				return &m.data.MarketingSpends[i]
			}
		}
		return nil
	}

	m.data.MarketingSpends = append(m.data.MarketingSpends, models.MarketingSpend{
		ID:     utils.NewID("spend"),
		Name:   input.Name,
		Amount: input.Amount,
	})
	m.persist()
	return &m.data.MarketingSpends[len(m.data.MarketingSpends)-1]
}

// DeleteMarketingSpend 删除营销投入
func (m *Manager) DeleteMarketingSpend(id string) {
	kept := m.data.MarketingSpends[:0]
	for _, s := range m.data.MarketingSpends {
		if s.ID == id {
			continue
		}
		kept = append(kept, s)
	}
	m.data.MarketingSpends = kept
	m.persist()
}
