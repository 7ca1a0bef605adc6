package main

import (
	"os"

	"carcrm/config"
	"carcrm/models"
	"carcrm/repository"
	"carcrm/service"
	"carcrm/utils"
)

// openStore 按配置选择存储后端
func openStore(cfg *config.Config) (repository.Store, func()) {
	switch cfg.Storage.Backend {
	case "mongo":
		store, err := repository.NewMongoStore(cfg.Storage.MongoURI, cfg.Storage.MongoDB)
		if err != nil {
			utils.Logger.Fatal().Err(err).Msg("初始化MongoDB存储失败")
		}
		return store, store.Close
	case "memory":
		return repository.NewMemStore(), func() {}
	default:
		store, err := repository.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			utils.Logger.Fatal().Err(err).Msg("初始化文件存储失败")
		}
		return store, func() {}
	}
}

func main() {
	// 初始化日志
	utils.InitLogger()

	// 加载配置
	cfg := config.Load()

	// 初始化存储
	store, closeStore := openStore(cfg)
	defer closeStore()

	// 以管理员会话启动管理器，加载数据并执行一次自动提醒扫描
	utils.Logger.Info().Msg("开始系统初始化...")
	manager := service.NewManager(store, service.Options{
		Notify: func(message, kind string) {
			utils.Logger.Info().Str("kind", kind).Msg(message)
		},
		TierReminderDays: map[models.CustomerTier]int{
			models.CustomerTierHOT:  cfg.Reminder.HotDays,
			models.CustomerTierWARM: cfg.Reminder.WarmDays,
			models.CustomerTierCOLD: cfg.Reminder.ColdDays,
			models.CustomerTierLOST: cfg.Reminder.LostDays,
		},
		ScanCooldown:    cfg.Reminder.Cooldown,
		DefaultPageSize: cfg.PageSize,
	})

	admin, err := manager.Login("admin", "admin123")
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("默认管理员登录失败")
	}
	manager.SetSession(admin)
	utils.Logger.Info().Msg("系统初始化完成")

	// 输出一份看板摘要
	stats := manager.Dashboard()
	utils.Logger.Info().
		Int("customers", stats.TotalCustomers).
		Int("pipeline", stats.PipelineCount).
		Int("won", stats.WonCount).
		Int("delivered", stats.DeliveredCount).
		Int("openReminders", stats.OpenReminders).
		Msg("看板摘要")

	for _, row := range manager.SourceReport() {
		utils.Logger.Info().
			Str("source", row.Source).
			Int("customers", row.Customers).
			Float64("deliveredRevenue", row.DeliveredRevenue).
			Float64("ltvCac", row.LTVCACRatio).
			Msg("来源投产")
	}

	// 导出当前客户列表
	if err := manager.ExportCustomersCSV(os.Stdout, service.CustomerQuery{
		Sort: service.SortState{Key: "lastContactAt", Desc: true},
	}); err != nil {
		utils.Logger.Error().Err(err).Msg("导出客户列表失败")
	}
}
