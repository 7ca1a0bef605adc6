package service

import (
	"carcrm/models"
	"carcrm/utils"
)

// validateCustomerFields 客户字段校验，校验不通过的数据不会进入数据集
func validateCustomerFields(name, phone, email string) error {
	fields := make(map[string]string)
	if name == "" {
		fields["name"] = "姓名不能为空"
	}
	if phone == "" {
		fields["phone"] = "手机号不能为空"
	} else if !utils.IsValidPhone(phone) {
		fields["phone"] = "手机号格式不正确"
	}
	if email != "" && !utils.IsValidEmail(email) {
		fields["email"] = "邮箱格式不正确"
	}
	if len(fields) > 0 {
		return utils.NewValidationError(fields)
	}
	return nil
}

// CreateCustomer 创建客户
// 非管理员创建时客户自动归属创建人
func (m *Manager) CreateCustomer(input models.CustomerInput) (*models.Customer, error) {
	if err := validateCustomerFields(input.Name, input.Phone, input.Email); err != nil {
		return nil, err
	}

	now := m.now()
	customer := models.Customer{
		ID:            utils.NewID("cust"),
		Name:          input.Name,
		Phone:         input.Phone,
		Email:         input.Email,
		CarModel:      input.CarModel,
		Source:        input.Source,
		StatusID:      input.StatusID,
		City:          input.City,
		Notes:         input.Notes,
		SalesValue:    input.SalesValue,
		Tier:          input.Tier,
		CreatedAt:     now,
		LastContactAt: now,
		Interactions:  []models.Interaction{},
		OwnerUserID:   input.OwnerUserID,
	}
	if m.session != nil && m.session.Role != models.UserRoleADMIN {
		customer.OwnerUserID = m.session.ID
	}

	m.data.Customers = append(m.data.Customers, customer)
	m.persist()

	utils.LogInfo(map[string]interface{}{
		"customerId": customer.ID,
		"owner":      customer.OwnerUserID,
	}, "创建客户")
	return &customer, nil
}

// applyCustomerPatch 合并patch字段
func applyCustomerPatch(c *models.Customer, patch models.CustomerPatch) {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.CarModel != nil {
		c.CarModel = *patch.CarModel
	}
	if patch.Source != nil {
		c.Source = *patch.Source
	}
	if patch.StatusID != nil {
		c.StatusID = *patch.StatusID
	}
	if patch.City != nil {
		c.City = *patch.City
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
	if patch.SalesValue != nil {
		c.SalesValue = *patch.SalesValue
	}
	if patch.Tier != nil {
		c.Tier = *patch.Tier
	}
	if patch.OwnerUserID != nil {
		c.OwnerUserID = *patch.OwnerUserID
	}
}

// validateCustomerPatch 只校验patch里出现的字段
func validateCustomerPatch(patch models.CustomerPatch) error {
	fields := make(map[string]string)
	if patch.Name != nil && *patch.Name == "" {
		fields["name"] = "姓名不能为空"
	}
	if patch.Phone != nil && !utils.IsValidPhone(*patch.Phone) {
		fields["phone"] = "手机号格式不正确"
	}
	if patch.Email != nil && *patch.Email != "" && !utils.IsValidEmail(*patch.Email) {
		fields["email"] = "邮箱格式不正确"
	}
	if len(fields) > 0 {
		return utils.NewValidationError(fields)
	}
	return nil
}

// UpdateCustomer 合并patch并刷新最后联系时间
// ID不存在时静默返回nil，拖拽改阶段也走这里
func (m *Manager) UpdateCustomer(id string, patch models.CustomerPatch) (*models.Customer, error) {
	if err := validateCustomerPatch(patch); err != nil {
		return nil, err
	}

	idx := m.findCustomer(id)
	if idx < 0 {
		return nil, nil
	}

	c := &m.data.Customers[idx]
	applyCustomerPatch(c, patch)
	c.LastContactAt = m.now()

	m.persist()
	return c, nil
}

// DeleteCustomers 删除客户，级联删除其全部提醒，并从选中集移除
func (m *Manager) DeleteCustomers(ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	removing := make(map[string]bool, len(ids))
	for _, id := range ids {
		removing[id] = true
	}

	kept := m.data.Customers[:0]
	removed := 0
	for _, c := range m.data.Customers {
		if removing[c.ID] {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	if removed == 0 {
		return 0
	}
	m.data.Customers = kept

	keptReminders := m.data.Reminders[:0]
	for _, r := range m.data.Reminders {
		if removing[r.CustomerID] {
			continue
		}
		keptReminders = append(keptReminders, r)
	}
	m.data.Reminders = keptReminders

	for id := range removing {
		delete(m.selection, id)
	}

	m.persist()
	utils.LogInfo(map[string]interface{}{"removed": removed}, "删除客户")
	return removed
}

// AddInteraction 追加跟进记录
// 跟进记录是历史，不重置最后联系时间，这一点与UpdateCustomer不同
func (m *Manager) AddInteraction(customerID string, input models.InteractionInput) *models.Interaction {
	idx := m.findCustomer(customerID)
	if idx < 0 {
		return nil
	}
	if input.DurationMinutes < 0 {
		input.DurationMinutes = 0
	}

	record := models.Interaction{
		ID:              utils.NewID("int"),
		Type:            input.Type,
		OccurredAt:      input.OccurredAt,
		Notes:           input.Notes,
		DurationMinutes: input.DurationMinutes,
		Outcome:         input.Outcome,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = m.now()
	}
	if m.session != nil {
		record.AuthorUserID = m.session.ID
	}

	c := &m.data.Customers[idx]
	c.Interactions = append(c.Interactions, record)

	m.persist()
	return &record
}

// RemoveInteraction 删除跟进记录
func (m *Manager) RemoveInteraction(customerID, interactionID string) {
	idx := m.findCustomer(customerID)
	if idx < 0 {
		return
	}

	c := &m.data.Customers[idx]
	kept := c.Interactions[:0]
	for _, it := range c.Interactions {
		if it.ID == interactionID {
			continue
		}
		kept = append(kept, it)
	}
	c.Interactions = kept

	m.persist()
}

// SaveReminder 新建或更新提醒，existingID为空表示新建
func (m *Manager) SaveReminder(input models.ReminderInput, existingID string) *models.Reminder {
	if existingID != "" {
		for i := range m.data.Reminders {
			if m.data.Reminders[i].ID != existingID {
				continue
			}
			r := &m.data.Reminders[i]
			r.CustomerID = input.CustomerID
			r.Title = input.Title
			r.Description = input.Description
			r.DueAt = input.DueAt
			r.Priority = input.Priority
			if input.OwnerUserID != "" {
				r.OwnerUserID = input.OwnerUserID
			}
			m.persist()
			return r
		}
		// ID不存在时静默不处理
		return nil
	}

	reminder := models.Reminder{
		ID:          utils.NewID("rem"),
		CustomerID:  input.CustomerID,
		OwnerUserID: input.OwnerUserID,
		Title:       input.Title,
		Description: input.Description,
		DueAt:       input.DueAt,
		Priority:    input.Priority,
	}
	if reminder.OwnerUserID == "" && m.session != nil {
		reminder.OwnerUserID = m.session.ID
	}

	m.data.Reminders = append(m.data.Reminders, reminder)
	m.persist()
	return &reminder
}

// DeleteReminder 删除提醒
func (m *Manager) DeleteReminder(id string) {
	kept := m.data.Reminders[:0]
	removed := false
	for _, r := range m.data.Reminders {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return
	}
	m.data.Reminders = kept
	m.persist()
}

// ToggleReminderComplete 翻转完成状态，返回新状态供调用方提示
func (m *Manager) ToggleReminderComplete(id string) (completed bool, ok bool) {
	for i := range m.data.Reminders {
		if m.data.Reminders[i].ID != id {
			continue
		}
		m.data.Reminders[i].Completed = !m.data.Reminders[i].Completed
		m.persist()
		return m.data.Reminders[i].Completed, true
	}
	return false, false
}

// BulkUpdate 对一批客户应用同一patch并清空选中集
// 常见用法是批量改阶段或批量转移归属
func (m *Manager) BulkUpdate(ids []string, patch models.CustomerPatch) (int, error) {
	if err := validateCustomerPatch(patch); err != nil {
		return 0, err
	}

	updating := make(map[string]bool, len(ids))
	for _, id := range ids {
		updating[id] = true
	}

	now := m.now()
	updated := 0
	for i := range m.data.Customers {
		if !updating[m.data.Customers[i].ID] {
			continue
		}
		applyCustomerPatch(&m.data.Customers[i], patch)
		m.data.Customers[i].LastContactAt = now
		updated++
	}

	m.ClearSelection()
	if updated > 0 {
		m.persist()
	}

	utils.LogInfo(map[string]interface{}{"updated": updated}, "批量更新客户")
	return updated, nil
}
