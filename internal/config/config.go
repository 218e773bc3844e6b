package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type Logger struct {
	Level string `yaml:"level"`
	Sink  string `yaml:"sink"`
}

type Telegram struct {
	Token     string `yaml:"token"`
	AdminID   int64  `yaml:"admin_id"`
	Developer string `yaml:"developer"` // support contact handle, without @
}

type Redis struct {
	Addr string `yaml:"addr"` // empty: in-process session store
}

type Payment struct {
	KHQRURL      string        `yaml:"khqr_url"`
	ABAPayURL    string        `yaml:"aba_pay_url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

type Bot struct {
	Language            string `yaml:"language"` // "km" or "en"
	OrdersPerPage       int    `yaml:"orders_per_page"`
	UsersPerPage        int    `yaml:"users_per_page"`
	ConfirmCancelButton bool   `yaml:"confirm_cancel_button"`
	AutoAttachProof     bool   `yaml:"auto_attach_proof"`
}

type AppConfig struct {
	Logger   Logger   `yaml:"log"`
	Telegram Telegram `yaml:"telegram"`
	Database Database `yaml:"database"`
	Redis    Redis    `yaml:"redis"`
	Payment  Payment  `yaml:"payment"`
	Bot      Bot      `yaml:"bot"`
}

func NewConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var appConfig AppConfig
	if err := yaml.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfig.applyEnv()
	appConfig.applyDefaults()

	if appConfig.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token is not set")
	}
	if appConfig.Telegram.AdminID == 0 {
		return nil, fmt.Errorf("telegram admin_id is not set")
	}

	return &appConfig, nil
}

// applyEnv lets secrets come from the environment instead of the yaml file.
func (c *AppConfig) applyEnv() {
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("ADMIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.AdminID = id
		}
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Bot.Language == "" {
		c.Bot.Language = "km"
	}
	if c.Bot.OrdersPerPage <= 0 {
		c.Bot.OrdersPerPage = 10
	}
	if c.Bot.UsersPerPage <= 0 {
		c.Bot.UsersPerPage = 15
	}
	if c.Payment.FetchTimeout <= 0 {
		c.Payment.FetchTimeout = 10 * time.Second
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Sink == "" {
		c.Logger.Sink = "stdout"
	}
}
