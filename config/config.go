package config

import (
	"time"

	"carcrm/utils"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Storage  StorageConfig
	Reminder ReminderConfig
	PageSize int
	Debug    bool
}

// StorageConfig 存储后端配置
type StorageConfig struct {
	Backend  string // file | mongo | memory
	DataDir  string
	MongoURI string
	MongoDB  string
}

// ReminderConfig 自动提醒规则配置
type ReminderConfig struct {
	Cooldown time.Duration
	HotDays  int
	WarmDays int
	ColdDays int
	LostDays int // 0表示流失客户不自动提醒
}

// Load 加载配置：.env文件 + 环境变量 + 默认值
func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		utils.Logger.Warn().Err(err).Msg("未找到.env文件，使用环境变量")
	}

	viper.SetDefault("CRM_STORAGE_BACKEND", "file")
	viper.SetDefault("CRM_DATA_DIR", "./data")
	viper.SetDefault("CRM_MONGO_URI", "mongodb://127.0.0.1:27017")
	viper.SetDefault("CRM_MONGO_DB", "carcrm")
	viper.SetDefault("CRM_SCAN_COOLDOWN_HOURS", 12)
	viper.SetDefault("CRM_HOT_REMINDER_DAYS", 3)
	viper.SetDefault("CRM_WARM_REMINDER_DAYS", 5)
	viper.SetDefault("CRM_COLD_REMINDER_DAYS", 7)
	viper.SetDefault("CRM_LOST_REMINDER_DAYS", 0)
	viper.SetDefault("CRM_PAGE_SIZE", 10)
	viper.SetDefault("CRM_DEBUG", false)

	return &Config{
		Storage: StorageConfig{
			Backend:  viper.GetString("CRM_STORAGE_BACKEND"),
			DataDir:  viper.GetString("CRM_DATA_DIR"),
			MongoURI: viper.GetString("CRM_MONGO_URI"),
			MongoDB:  viper.GetString("CRM_MONGO_DB"),
		},
		Reminder: ReminderConfig{
			Cooldown: time.Duration(viper.GetInt("CRM_SCAN_COOLDOWN_HOURS")) * time.Hour,
			HotDays:  viper.GetInt("CRM_HOT_REMINDER_DAYS"),
			WarmDays: viper.GetInt("CRM_WARM_REMINDER_DAYS"),
			ColdDays: viper.GetInt("CRM_COLD_REMINDER_DAYS"),
			LostDays: viper.GetInt("CRM_LOST_REMINDER_DAYS"),
		},
		PageSize: viper.GetInt("CRM_PAGE_SIZE"),
		Debug:    viper.GetBool("CRM_DEBUG"),
	}
}
