package config

// LLMConfig represents the provider selection and shared prompt limits
type LLMConfig struct {
	Provider    string
	MaxBodySize int
}

// OllamaConfig represents the configuration for a local Ollama endpoint
type OllamaConfig struct {
	Host    string
	Model   string
	Timeout string
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	Temperature float32
	TopP        float32
}

// SMTPConfig represents the outbound mail transport configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// IMAPConfig represents the inbound mailbox configuration
type IMAPConfig struct {
	Host     string
	Port     int
	Mailbox  string
	Username string
	Password string
}

// TriageConfig represents the triage orchestration settings
type TriageConfig struct {
	EscalationEmail string
	IgnoredSenders  []string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider:    c.GetString("llm.provider"),
		MaxBodySize: c.GetInt("llm.max_body_size"),
	}
}

// GetOllama returns the Ollama configuration
func (c *Config) GetOllama() OllamaConfig {
	return OllamaConfig{
		Host:    c.GetString("ollama.host"),
		Model:   c.GetString("ollama.model"),
		Timeout: c.GetString("ollama.timeout"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetSMTP returns the SMTP configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		Host:     c.GetString("smtp.host"),
		Port:     c.GetInt("smtp.port"),
		Username: c.GetString("smtp.username"),
		Password: c.GetString("smtp.password"),
		From:     c.GetString("smtp.from"),
	}
}

// GetIMAP returns the IMAP configuration
func (c *Config) GetIMAP() IMAPConfig {
	return IMAPConfig{
		Host:     c.GetString("imap.host"),
		Port:     c.GetInt("imap.port"),
		Mailbox:  c.GetString("imap.mailbox"),
		Username: c.GetString("imap.username"),
		Password: c.GetString("imap.password"),
	}
}

// GetTriage returns the triage configuration
func (c *Config) GetTriage() TriageConfig {
	return TriageConfig{
		EscalationEmail: c.GetString("triage.escalation_email"),
		IgnoredSenders:  c.GetStringSlice("triage.ignored_senders"),
	}
}
