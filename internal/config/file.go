package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file. All fields are optional; only
// set values override the defaults.
type fileConfig struct {
	SurrealDB struct {
		URL       string `yaml:"url"`
		Namespace string `yaml:"namespace"`
		Database  string `yaml:"database"`
		User      string `yaml:"user"`
		Pass      string `yaml:"pass"`
		AuthLevel string `yaml:"auth_level"`
	} `yaml:"surrealdb"`

	Embedding struct {
		Provider  string `yaml:"provider"`
		Model     string `yaml:"model"`
		Dimension int    `yaml:"dimension"`
		Host      string `yaml:"host"`
	} `yaml:"embedding"`

	LLM struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
	} `yaml:"llm"`

	GitHub struct {
		Token string `yaml:"token"`
		User  string `yaml:"user"`
	} `yaml:"github"`

	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// applyFile overlays values from the YAML file at path onto c.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	set(&c.SurrealDBURL, fc.SurrealDB.URL)
	set(&c.SurrealDBNamespace, fc.SurrealDB.Namespace)
	set(&c.SurrealDBDatabase, fc.SurrealDB.Database)
	set(&c.SurrealDBUser, fc.SurrealDB.User)
	set(&c.SurrealDBPass, fc.SurrealDB.Pass)
	set(&c.SurrealDBAuthLevel, fc.SurrealDB.AuthLevel)

	if fc.Embedding.Provider != "" {
		c.EmbedProvider = Provider(fc.Embedding.Provider)
	}
	set(&c.EmbedModel, fc.Embedding.Model)
	if fc.Embedding.Dimension > 0 {
		c.EmbedDimension = fc.Embedding.Dimension
	}
	set(&c.OllamaHost, fc.Embedding.Host)

	if fc.LLM.Provider != "" {
		c.LLMProvider = Provider(fc.LLM.Provider)
	}
	set(&c.LLMModel, fc.LLM.Model)

	set(&c.GitHubToken, fc.GitHub.Token)
	set(&c.GitHubUser, fc.GitHub.User)

	set(&c.LogFile, fc.Log.File)
	if fc.Log.Level != "" {
		c.LogLevel = parseLogLevel(fc.Log.Level)
	}
	return nil
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
