package service

import (
	"carcrm/models"
	"carcrm/utils"
)

// Login 用户名密码登录
// 密码是明文等值比较，沿用原系统行为，已知安全缺陷，不在本仓库范围内加固
func (m *Manager) Login(username, password string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].Username == username && m.users[i].Password == password {
			return &m.users[i], nil
		}
	}
	return nil, utils.NewAppError("用户名或密码错误", "INVALID_CREDENTIALS", nil)
}

// CreateUser 管理员创建用户
func (m *Manager) CreateUser(input models.UserInput) (*models.User, error) {
	if !m.isAdmin() {
		return nil, utils.CreateForbiddenError()
	}

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "用户名不能为空"
	}
	if input.Password == "" {
		fields["password"] = "密码不能为空"
	}
	if input.Role != models.UserRoleADMIN && input.Role != models.UserRoleSALES {
		fields["role"] = "角色不合法"
	}
	for _, u := range m.users {
		if u.Username == input.Username {
			fields["username"] = "用户名已存在"
		}
	}
	if len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}

	user := models.User{
		ID:          utils.NewID("user"),
		Username:    input.Username,
		Password:    input.Password,
		Role:        input.Role,
		DisplayName: input.DisplayName,
		CreatedAt:   m.now(),
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	m.users = append(m.users, user)
	m.persist()

	utils.LogInfo(map[string]interface{}{"userId": user.ID, "role": user.Role}, "创建用户")
	return &user, nil
}

// DeleteUser 管理员删除用户
// 其名下客户回到未分配状态，其提醒一并删除
func (m *Manager) DeleteUser(id string) error {
	if !m.isAdmin() {
		return utils.CreateForbiddenError()
	}
	if m.session != nil && m.session.ID == id {
		return utils.NewAppError("不能删除当前登录用户", "DELETE_SELF", nil)
	}

	kept := m.users[:0]
	found := false
	for _, u := range m.users {
		if u.ID == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return nil
	}
	m.users = kept

	for i := range m.data.Customers {
		if m.data.Customers[i].OwnerUserID == id {
			m.data.Customers[i].OwnerUserID = ""
		}
	}

	keptReminders := m.data.Reminders[:0]
	for _, r := range m.data.Reminders {
		if r.OwnerUserID == id {
			continue
		}
		keptReminders = append(keptReminders, r)
	}
	m.data.Reminders = keptReminders

	m.persist()
	utils.LogInfo(map[string]interface{}{"userId": id}, "删除用户")
	return nil
}
