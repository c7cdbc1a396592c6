package gemini

import "fmt"

type Config struct {
	BaseURL        string `envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com"`
	ApiVersion     string `envconfig:"API_VERSION" default:"v1beta"`
	ApiKey         string `envconfig:"API_KEY"`
	TextModel      string `envconfig:"TEXT_MODEL" default:"gemini-2.5-flash"`
	ImageModel     string `envconfig:"IMAGE_MODEL" default:"imagen-4.0-generate-001"`
	TimeoutSeconds int    `envconfig:"TIMEOUT" default:"30"` // на один внешний вызов
}

// Validate проверяет обязательные поля конфигурации
func (c *Config) Validate() error {
	if c.ApiKey == "" {
		return fmt.Errorf("gemini api key is required")
	}
	return nil
}
