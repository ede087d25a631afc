package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 评估流水线配置
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Extractor   ExtractorConfig   `yaml:"extractor"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// ExtractorConfig 网页抓取相关配置
type ExtractorConfig struct {
	Timeout             time.Duration `yaml:"timeout"`
	UserAgent           string        `yaml:"user_agent"`
	ReadabilityFallback bool          `yaml:"readability_fallback"`
}

// DBConfig 数据库相关配置，Driver 为空时不落库
type DBConfig struct {
	Driver   string `yaml:"driver"` // postgres | sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"` // sqlite 下为文件路径
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig LLM 调用限流配置，RPM 为 0 表示不限流
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

const (
	DefaultModel          = "gpt-5.1"
	DefaultExtractTimeout = 10 * time.Second
)

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults 填充未配置的字段
func (c *Config) ApplyDefaults() {
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.Extractor.Timeout <= 0 {
		c.Extractor.Timeout = DefaultExtractTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.RPM > 0 && c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.DB.Driver == "postgres" && c.DB.Port == 0 {
		c.DB.Port = 5432
	}
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("配置错误: 未设置 llm.api_key")
	}
	switch c.DB.Driver {
	case "", "postgres", "sqlite":
	default:
		return fmt.Errorf("配置错误: 不支持的数据库驱动 %q", c.DB.Driver)
	}
	return nil
}

// Enabled 是否配置了数据库
func (c DBConfig) Enabled() bool {
	return c.Driver != ""
}

// DSN 生成对应驱动的连接串
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Name
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}
