package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SystemConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host           string   `yaml:"host" json:"host"`
	Port           int      `yaml:"port" json:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	Secret         string   `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

type AdminConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

type WhatsappConfig struct {
	Number string `yaml:"number" json:"number"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SystemConfig   `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DBConfig       `yaml:"database" json:"database"`
	Admin    AdminConfig    `yaml:"admin" json:"admin"`
	Whatsapp WhatsappConfig `yaml:"whatsapp" json:"whatsapp"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SystemConfig{
		Appid:    "KalaiAPI",
		Location: "America/Costa_Rica",
		Workdir:  "/var/kalaiapi",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 8000,
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		Secret: "kalai-secret-change-in-production",
	},
	Database: DBConfig{
		Type:   "postgres",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "kalai",
		User:   "postgres",
		Passwd: "postgres",
	},
	Admin: AdminConfig{
		Username: "admin",
		Password: "kalai2026",
	},
	Whatsapp: WhatsappConfig{
		Number: "+50688926754",
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/kalaiapi/kalaiapi.log",
	},
}

func setEnvString(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvInt(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToInt(v)
	}
}

func setEnvBool(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToBool(v)
	}
}

// LoadConfig reads configuration in three layers: compiled-in defaults,
// an optional YAML file and KALAI_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			// the logger is not up yet, so parse trouble goes to stderr
			if err := yaml.Unmarshal(data, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "config: failed to parse %s: %v\n", cfile, err)
			}
		}
	}

	setEnvString("KALAI_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvString("KALAI_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBool("KALAI_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvString("KALAI_WEB_HOST", &cfg.Web.Host)
	setEnvInt("KALAI_WEB_PORT", &cfg.Web.Port)
	setEnvString("KALAI_WEB_SECRET", &cfg.Web.Secret)
	if v := os.Getenv("KALAI_WEB_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Web.AllowedOrigins = origins
	}

	setEnvString("KALAI_DB_TYPE", &cfg.Database.Type)
	setEnvString("KALAI_DB_HOST", &cfg.Database.Host)
	setEnvInt("KALAI_DB_PORT", &cfg.Database.Port)
	setEnvString("KALAI_DB_NAME", &cfg.Database.Name)
	setEnvString("KALAI_DB_USER", &cfg.Database.User)
	setEnvString("KALAI_DB_PASSWD", &cfg.Database.Passwd)
	setEnvBool("KALAI_DB_DEBUG", &cfg.Database.Debug)

	setEnvString("KALAI_ADMIN_USERNAME", &cfg.Admin.Username)
	setEnvString("KALAI_ADMIN_PASSWORD", &cfg.Admin.Password)

	setEnvString("KALAI_WHATSAPP_NUMBER", &cfg.Whatsapp.Number)

	setEnvString("KALAI_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBool("KALAI_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvString("KALAI_LOGGER_FILENAME", &cfg.Logger.Filename)

	return cfg
}
