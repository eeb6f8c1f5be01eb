package internal

import (
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the migration run configuration.
type Config struct {
	App         ApplicationConfig `yaml:"app"`
	Posts       PostsConfig       `yaml:"posts"`
	Attachments AttachmentsConfig `yaml:"attachments"`
	Images      ImagesConfig      `yaml:"images"`
	Migrate     MigrateConfig     `yaml:"migrate"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Posts.Validate(); err != nil {
		return err
	}
	if err := c.Attachments.Validate(); err != nil {
		return err
	}
	if err := c.Images.Validate(); err != nil {
		return err
	}
	return c.Migrate.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// PostsConfig holds the directory of Markdown documents to migrate.
// Only top-level .md files are processed; subdirectories are ignored.
type PostsConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the posts configuration.
func (c *PostsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AttachmentsConfig holds the root of the attachment source tree.
type AttachmentsConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the attachments configuration.
func (c *AttachmentsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// ImagesConfig holds the destination static-images tree and the URL prefix
// rewritten links point at. The prefix is also recognised on incoming
// references that already target the static tree.
type ImagesConfig struct {
	Path   string `yaml:"path"`
	Prefix string `yaml:"prefix"`
}

// Validate validates the images configuration.
func (c *ImagesConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Prefix, validation.Required),
	); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Prefix, "/") || !strings.HasSuffix(c.Prefix, "/") {
		return fmt.Errorf("images: prefix must start and end with a slash: %q", c.Prefix)
	}
	return nil
}

// MigrateConfig controls how references are processed.
//
// Extensions is the set of image file extensions the migrator handles;
// references with any other extension are left untouched. DryRun suppresses
// attachment copies; rewritten documents are still written back.
type MigrateConfig struct {
	DryRun     bool     `yaml:"dry_run"`
	Extensions []string `yaml:"extensions"`
}

// Validate validates the migrate configuration.
func (c *MigrateConfig) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("migrate: at least one extension is required")
	}
	for _, ext := range c.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("migrate: extension must start with a dot: %q", ext)
		}
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Posts: PostsConfig{
			Path: "./content/posts",
		},
		Attachments: AttachmentsConfig{
			Path: "./vault/posts",
		},
		Images: ImagesConfig{
			Path:   "./static/images",
			Prefix: "/images/",
		},
		Migrate: MigrateConfig{
			Extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".svg"},
		},
	}
}
