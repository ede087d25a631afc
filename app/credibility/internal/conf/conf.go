package conf

type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Pipeline *Pipeline `json:"pipeline"`
	Log      *Log      `json:"log"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Data struct {
	Database *Database `json:"database"`
	// Seed 为 true 且表为空时写入示例数据
	Seed bool `json:"seed"`
}

type Database struct {
	Driver string `json:"driver"` // postgres | sqlite
	Source string `json:"source"`
}

// Pipeline 评估流水线配置，启动时转换为 pkg/config.Config
type Pipeline struct {
	Llm         *LLM         `json:"llm"`
	Extractor   *Extractor   `json:"extractor"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Extractor struct {
	Timeout             string `json:"timeout"`
	UserAgent           string `json:"user_agent"`
	ReadabilityFallback bool   `json:"readability_fallback"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
