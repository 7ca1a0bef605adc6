package repository

import (
	"time"

	"carcrm/models"
	"carcrm/utils"
)

// SeedPayload 生成演示数据集
// 客户轮流分配给非管理员用户，并保留至少两个未分配客户用于公海视图
func SeedPayload(now time.Time) *models.StoredPayload {
	users := seedUsers(now)

	statuses := []models.Status{
		{ID: "status1", Name: "新线索", Color: "#1890ff", Order: 1, Kind: models.StatusKindPipeline},
		{ID: "status2", Name: "意向跟进", Color: "#faad14", Order: 2, Kind: models.StatusKindPipeline},
		{ID: "status3", Name: "到店试驾", Color: "#722ed1", Order: 3, Kind: models.StatusKindPipeline},
		{ID: "status4", Name: "已下订", Color: "#52c41a", Order: 4, Kind: models.StatusKindWin},
		{ID: "status5", Name: "已交车", Color: "#13c2c2", Order: 5, Kind: models.StatusKindDelivery},
		{ID: "status6", Name: "战败", Color: "#bfbfbf", Order: 6, Kind: models.StatusKindLostSale},
	}

	carModels := []models.CarModel{
		{ID: utils.NewID("car"), Name: "MG HS"},
		{ID: utils.NewID("car"), Name: "MG ZS"},
		{ID: utils.NewID("car"), Name: "MG5"},
		{ID: utils.NewID("car"), Name: "MG7"},
		{ID: utils.NewID("car"), Name: "Cyberster"},
	}

	sources := []models.CustomerSource{
		{ID: utils.NewID("src"), Name: "线上咨询"},
		{ID: utils.NewID("src"), Name: "到店"},
		{ID: utils.NewID("src"), Name: "转介绍"},
		{ID: utils.NewID("src"), Name: "车展"},
	}

	spends := []models.MarketingSpend{
		{ID: utils.NewID("spend"), Name: "线上咨询", Amount: 50000},
		{ID: utils.NewID("spend"), Name: "车展", Amount: 80000},
		{ID: utils.NewID("spend"), Name: "转介绍", Amount: 5000},
	}

	customers := seedCustomers(now, users, statuses, carModels, sources)
	reminders := seedReminders(now, customers)

	return &models.StoredPayload{
		Users: users,
		Dataset: models.CrmData{
			Customers:       customers,
			Reminders:       reminders,
			Statuses:        statuses,
			CarModels:       carModels,
			Sources:         sources,
			MarketingSpends: spends,
		},
	}
}

func seedUsers(now time.Time) []models.User {
	return []models.User{
		{
			ID:          utils.NewID("user"),
			Username:    "admin",
			Password:    "admin123",
			Role:        models.UserRoleADMIN,
			DisplayName: "店长",
			CreatedAt:   now,
		},
		{
			ID:          utils.NewID("user"),
			Username:    "wangqiang",
			Password:    "123456",
			Role:        models.UserRoleSALES,
			DisplayName: "王强",
			CreatedAt:   now,
		},
		{
			ID:          utils.NewID("user"),
			Username:    "lihong",
			Password:    "123456",
			Role:        models.UserRoleSALES,
			DisplayName: "李红",
			CreatedAt:   now,
		},
	}
}

type seedCustomerSpec struct {
	name       string
	phone      string
	email      string
	carModel   string
	source     string
	statusID   string
	city       string
	salesValue float64
	tier       models.CustomerTier
	contactAge time.Duration // 距上次联系的时长
	unassigned bool
}

func seedCustomers(now time.Time, users []models.User, statuses []models.Status,
	carModels []models.CarModel, sources []models.CustomerSource) []models.Customer {

	specs := []seedCustomerSpec{
		{name: "张伟", phone: "13812340001", email: "zhangwei@example.com", carModel: "MG HS", source: "线上咨询", statusID: "status2", city: "上海", salesValue: 165000, tier: models.CustomerTierHOT, contactAge: 26 * time.Hour},
		{name: "李娜", phone: "13812340002", carModel: "MG ZS", source: "到店", statusID: "status1", city: "苏州", salesValue: 98000, tier: models.CustomerTierWARM, contactAge: 2 * 24 * time.Hour},
		{name: "王芳", phone: "13812340003", email: "wangfang@example.com", carModel: "MG7", source: "车展", statusID: "status3", city: "上海", salesValue: 212000, tier: models.CustomerTierHOT, contactAge: 5 * 24 * time.Hour},
		{name: "刘洋", phone: "13812340004", carModel: "MG5", source: "转介绍", statusID: "status4", city: "杭州", salesValue: 109000, tier: models.CustomerTierWARM, contactAge: 12 * time.Hour},
		{name: "陈静", phone: "13812340005", carModel: "Cyberster", source: "线上咨询", statusID: "status5", city: "上海", salesValue: 335000, tier: models.CustomerTierHOT, contactAge: 10 * 24 * time.Hour},
		{name: "杨帆", phone: "13812340006", carModel: "MG ZS", source: "到店", statusID: "status6", city: "南京", salesValue: 0, tier: models.CustomerTierLOST, contactAge: 20 * 24 * time.Hour},
		{name: "赵磊", phone: "13812340007", carModel: "MG HS", source: "车展", statusID: "status1", city: "上海", salesValue: 158000, tier: models.CustomerTierCOLD, contactAge: 9 * 24 * time.Hour, unassigned: true},
		{name: "孙莉", phone: "13812340008", carModel: "MG5", source: "线上咨询", statusID: "status1", city: "无锡", salesValue: 102000, tier: models.CustomerTierWARM, contactAge: 3 * 24 * time.Hour, unassigned: true},
	}

	// 非管理员用户轮流接收客户
	var reps []models.User
	for _, u := range users {
		if u.Role != models.UserRoleADMIN {
			reps = append(reps, u)
		}
	}

	customers := make([]models.Customer, 0, len(specs))
	repIdx := 0
	for _, spec := range specs {
		owner := ""
		if !spec.unassigned && len(reps) > 0 {
			owner = reps[repIdx%len(reps)].ID
			repIdx++
		}

		lastContact := now.Add(-spec.contactAge)
		customers = append(customers, models.Customer{
			ID:            utils.NewID("cust"),
			Name:          spec.name,
			Phone:         spec.phone,
			Email:         spec.email,
			CarModel:      spec.carModel,
			Source:        spec.source,
			StatusID:      spec.statusID,
			City:          spec.city,
			SalesValue:    spec.salesValue,
			Tier:          spec.tier,
			CreatedAt:     lastContact.Add(-7 * 24 * time.Hour),
			LastContactAt: lastContact,
			Interactions: []models.Interaction{
				{
					ID:              utils.NewID("int"),
					Type:            models.InteractionTypeCall,
					OccurredAt:      lastContact,
					Notes:           "首次电话沟通，确认购车意向",
					DurationMinutes: 10,
					Outcome:         models.InteractionOutcomeNeutral,
					AuthorUserID:    owner,
				},
			},
			OwnerUserID: owner,
		})
	}
	return customers
}

func seedReminders(now time.Time, customers []models.Customer) []models.Reminder {
	reminders := make([]models.Reminder, 0, 2)
	count := 0
	for _, c := range customers {
		if c.OwnerUserID == "" || count >= 2 {
			continue
		}
		reminders = append(reminders, models.Reminder{
			ID:          utils.NewID("rem"),
			CustomerID:  c.ID,
			OwnerUserID: c.OwnerUserID,
			Title:       "邀约 " + c.Name + " 到店",
			Description: "确认本周到店看车时间",
			DueAt:       now.Add(24 * time.Hour),
			Completed:   false,
			Priority:    models.ReminderPriorityMedium,
		})
		count++
	}
	return reminders
}
