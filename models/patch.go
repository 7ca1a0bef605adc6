package models

import (
	"time"
)

// CustomerInput 创建客户的输入数据
type CustomerInput struct {
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email,omitempty"`
	CarModel    string       `json:"carModel,omitempty"`
	Source      string       `json:"source,omitempty"`
	StatusID    string       `json:"statusId"`
	City        string       `json:"city,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	SalesValue  float64      `json:"salesValue"`
	Tier        CustomerTier `json:"tier"`
	OwnerUserID string       `json:"ownerUserId,omitempty"`
}

// CustomerPatch 客户部分更新
// 逐字段指针代替原来的无类型patch对象，非法字段无法静默合入
type CustomerPatch struct {
	Name        *string       `json:"name,omitempty"`
	Phone       *string       `json:"phone,omitempty"`
	Email       *string       `json:"email,omitempty"`
	CarModel    *string       `json:"carModel,omitempty"`
	Source      *string       `json:"source,omitempty"`
	StatusID    *string       `json:"statusId,omitempty"`
	City        *string       `json:"city,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	SalesValue  *float64      `json:"salesValue,omitempty"`
	Tier        *CustomerTier `json:"tier,omitempty"`
	OwnerUserID *string       `json:"ownerUserId,omitempty"`
}

// InteractionInput 创建跟进记录的输入数据
type InteractionInput struct {
	Type            InteractionType    `json:"type"`
	OccurredAt      time.Time          `json:"occurredAt"`
	Notes           string             `json:"notes"`
	DurationMinutes int                `json:"durationMinutes"`
	Outcome         InteractionOutcome `json:"outcome"`
}

// ReminderInput 保存提醒的输入数据
type ReminderInput struct {
	CustomerID  string           `json:"customerId"`
	OwnerUserID string           `json:"ownerUserId,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueAt       time.Time        `json:"dueAt"`
	Priority    ReminderPriority `json:"priority"`
}

// StatusInput 阶段配置的输入数据
type StatusInput struct {
	Name  string     `json:"name"`
	Color string     `json:"color"`
	Order int        `json:"order"`
	Kind  StatusKind `json:"kind"`
}

// CarModelInput 车型配置的输入数据
type CarModelInput struct {
	Name string `json:"name"`
}

// SourceInput 客户来源配置的输入数据
type SourceInput struct {
	Name string `json:"name"`
}

// MarketingSpendInput 营销投入配置的输入数据
type MarketingSpendInput struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// UserInput 管理员创建用户的输入数据
type UserInput struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Role        UserRole `json:"role"`
	DisplayName string   `json:"name"`
}
