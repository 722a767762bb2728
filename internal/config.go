// Package internal holds the application configuration.
package internal

import (
	"log/slog"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Content  ContentConfig     `yaml:"content"`
	Delivery DeliveryConfig    `yaml:"delivery"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Content.Validate(); err != nil {
		return err
	}
	return c.Delivery.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// ContentConfig locates the content tree inside the workspace. Directory
// fields are relative to the workspace root unless absolute.
type ContentConfig struct {
	Workspace    string `yaml:"workspace"` // optional override of env resolution
	ContentDir   string `yaml:"content_dir"`
	PublicDir    string `yaml:"public_dir"`
	PrivateDir   string `yaml:"private_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	AgentName    string `yaml:"agent_name"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.PublicDir, validation.Required),
		validation.Field(&c.PrivateDir, validation.Required),
		validation.Field(&c.TemplatesDir, validation.Required),
		validation.Field(&c.AgentName, validation.Required),
	)
}

// Resolve joins a configured directory with the workspace root.
func (c *ContentConfig) Resolve(workspaceRoot, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(workspaceRoot, dir)
}

// DeliveryConfig tunes payload assembly.
type DeliveryConfig struct {
	PageSize     int `yaml:"page_size"`
	ChunkSize    int `yaml:"chunk_size"`
	ExcerptChars int `yaml:"excerpt_chars"`
	MenuRowWidth int `yaml:"menu_row_width"`
}

// Validate validates the delivery configuration.
func (c *DeliveryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PageSize, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.ChunkSize, validation.Required, validation.Min(256), validation.Max(4096)),
		validation.Field(&c.ExcerptChars, validation.Required, validation.Min(40), validation.Max(4096)),
		validation.Field(&c.MenuRowWidth, validation.Required, validation.Min(1), validation.Max(8)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Content: ContentConfig{
			ContentDir:   "ascension",
			PublicDir:    "ascension/public",
			PrivateDir:   "ascension/private",
			TemplatesDir: "templates",
			AgentName:    "Ascension",
		},
		Delivery: DeliveryConfig{
			PageSize:     6,
			ChunkSize:    3900,
			ExcerptChars: 420,
			MenuRowWidth: 1,
		},
	}
}
