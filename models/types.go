package models

import (
	"time"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleADMIN UserRole = "ADMIN" // 管理员
	UserRoleSALES UserRole = "SALES" // 销售顾问
)

// CustomerTier 客户意向等级枚举
type CustomerTier string

const (
	CustomerTierHOT  CustomerTier = "HOT"  // 高意向
	CustomerTierWARM CustomerTier = "WARM" // 中意向
	CustomerTierCOLD CustomerTier = "COLD" // 低意向
	CustomerTierLOST CustomerTier = "LOST" // 流失
)

// StatusKind 阶段分类枚举，用于报表统计和自动提醒规则
type StatusKind string

const (
	StatusKindPipeline StatusKind = "pipeline"  // 跟进中阶段
	StatusKindWin      StatusKind = "win"       // 已成交
	StatusKindDelivery StatusKind = "delivered" // 已交车
	StatusKindLostSale StatusKind = "lostsale"  // 战败
)

// InteractionType 跟进方式枚举
type InteractionType string

const (
	InteractionTypeCall      InteractionType = "call"
	InteractionTypeEmail     InteractionType = "email"
	InteractionTypeMeeting   InteractionType = "meeting"
	InteractionTypeTestDrive InteractionType = "test_drive"
	InteractionTypeQuotation InteractionType = "quotation"
	InteractionTypeOther     InteractionType = "other"
)

// InteractionOutcome 跟进结果枚举
type InteractionOutcome string

const (
	InteractionOutcomePositive InteractionOutcome = "positive"
	InteractionOutcomeNeutral  InteractionOutcome = "neutral"
	InteractionOutcomeNegative InteractionOutcome = "negative"
)

// ReminderPriority 提醒优先级枚举
type ReminderPriority string

const (
	ReminderPriorityHigh   ReminderPriority = "high"
	ReminderPriorityMedium ReminderPriority = "medium"
	ReminderPriorityLow    ReminderPriority = "low"
)

// User 用户类型
type User struct {
	ID          string    `json:"id" bson:"id"`
	Username    string    `json:"username" bson:"username"`
	Password    string    `json:"password" bson:"password"` // 明文存储，与原系统一致，已知缺陷
	Role        UserRole  `json:"role" bson:"role"`
	DisplayName string    `json:"name" bson:"name"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Interaction 跟进记录，只属于其所在客户
type Interaction struct {
	ID              string             `json:"id" bson:"id"`
	Type            InteractionType    `json:"type" bson:"type"`
	OccurredAt      time.Time          `json:"occurredAt" bson:"occurredAt"`
	Notes           string             `json:"notes" bson:"notes"`
	DurationMinutes int                `json:"durationMinutes" bson:"durationMinutes"`
	Outcome         InteractionOutcome `json:"outcome" bson:"outcome"`
	AuthorUserID    string             `json:"authorUserId" bson:"authorUserId"`
}

// Customer 客户模型
type Customer struct {
	ID            string        `json:"id" bson:"id"`
	Name          string        `json:"name" bson:"name"`
	Phone         string        `json:"phone" bson:"phone"`
	Email         string        `json:"email,omitempty" bson:"email,omitempty"`
	CarModel      string        `json:"carModel,omitempty" bson:"carModel,omitempty"`
	Source        string        `json:"source,omitempty" bson:"source,omitempty"`
	StatusID      string        `json:"statusId" bson:"statusId"`
	City          string        `json:"city,omitempty" bson:"city,omitempty"`
	Notes         string        `json:"notes,omitempty" bson:"notes,omitempty"`
	SalesValue    float64       `json:"salesValue" bson:"salesValue"`
	Tier          CustomerTier  `json:"tier" bson:"tier"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	LastContactAt time.Time     `json:"lastContactAt" bson:"lastContactAt"`
	Interactions  []Interaction `json:"interactions" bson:"interactions"`

	// 空串表示未分配（公海客户），仅管理员可见
	OwnerUserID string `json:"ownerUserId,omitempty" bson:"ownerUserId,omitempty"`
}

// Status 销售阶段，order为唯一排序键
type Status struct {
	ID    string     `json:"id" bson:"id"`
	Name  string     `json:"name" bson:"name"`
	Color string     `json:"color" bson:"color"`
	Order int        `json:"order" bson:"order"`
	Kind  StatusKind `json:"kind" bson:"kind"`
}

// Reminder 跟进提醒
type Reminder struct {
	ID          string           `json:"id" bson:"id"`
	CustomerID  string           `json:"customerId" bson:"customerId"`
	OwnerUserID string           `json:"ownerUserId" bson:"ownerUserId"`
	Title       string           `json:"title" bson:"title"`
	Description string           `json:"description" bson:"description"`
	DueAt       time.Time        `json:"dueAt" bson:"dueAt"`
	Completed   bool             `json:"completed" bson:"completed"`
	Priority    ReminderPriority `json:"priority" bson:"priority"`
	IsAuto      bool             `json:"isAuto,omitempty" bson:"isAuto,omitempty"`
}

// CarModel 车型选项
type CarModel struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// CustomerSource 客户来源选项
type CustomerSource struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// MarketingSpend 营销投入，name按约定与客户来源同名，仅用于LTV:CAC报表
type MarketingSpend struct {
	ID     string  `json:"id" bson:"id"`
	Name   string  `json:"name" bson:"name"`
	Amount float64 `json:"amount" bson:"amount"`
}

// CrmData 内存数据集聚合，所有变更整体落盘
type CrmData struct {
	Customers       []Customer       `json:"customers" bson:"customers"`
	Reminders       []Reminder       `json:"reminders" bson:"reminders"`
	Statuses        []Status         `json:"statuses" bson:"statuses"`
	CarModels       []CarModel       `json:"carModels" bson:"carModels"`
	Sources         []CustomerSource `json:"customerSources" bson:"customerSources"`
	MarketingSpends []MarketingSpend `json:"marketingSpends" bson:"marketingSpends"`
}

// StoredPayload 持久化的完整载荷
type StoredPayload struct {
	Users   []User  `json:"users" bson:"users"`
	Dataset CrmData `json:"dataset" bson:"dataset"`
}

// StatusByID 按ID查找阶段
func (d *CrmData) StatusByID(id string) (Status, bool) {
	for _, s := range d.Statuses {
		if s.ID == id {
			return s, true
		}
	}
	return Status{}, false
}
