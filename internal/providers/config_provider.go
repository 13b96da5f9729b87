package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"bsd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "BSD_LOG_LEVEL")
	viper.BindEnv("snapshot.dir", "BSD_SNAPSHOT_DIR")
	viper.BindEnv("snapshot.saveInterval", "BSD_SAVE_INTERVAL")
	viper.BindEnv("snapshot.retentionDays", "BSD_RETENTION_DAYS")
	viper.BindEnv("analytics.windowDays", "BSD_WINDOW_DAYS")
	viper.BindEnv("cache.enabled", "BSD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "BSD_CACHE_SIZE")

	viper.SetDefault("analytics.windowDays", 30)
	viper.SetDefault("analytics.recentDays", 7)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "BotStatisticDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
