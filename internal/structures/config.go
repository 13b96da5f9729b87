package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type SnapshotConfig struct {
	Dir             string        `yaml:"dir" validate:"required|unixPath"`
	SaveInterval    time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	RetentionDays   int           `yaml:"retentionDays"`
	ArchiveEnabled  bool          `yaml:"archiveEnabled"`
	ArchiveInterval time.Duration `yaml:"archiveInterval"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AnalyticsConfig struct {
	WindowDays int `yaml:"windowDays" validate:"required|min:1"`
	RecentDays int `yaml:"recentDays" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Logger    LoggerConfig    `yaml:"logger"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
