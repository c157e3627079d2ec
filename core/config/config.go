package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

type Configuration struct {
	configFs afero.Fs
	// configurationDir is empty for the built-in configuration.
	configurationDir string

	Prompt      string `json:"prompt"`
	ColorPrompt bool   `json:"color_prompt"`

	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gte=-1"`

	EventLog string `json:"event_log"`

	InterruptMessage string `json:"interrupt_message"`

	DefaultPath string `json:"default_path" validate:"required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewMemMapFs()
	}
	return c.configFs
}

// Dir returns the directory the configuration was loaded from, or an empty
// string for the built-in configuration.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

// HistoryPath returns the absolute path of the history file, or an empty
// string if history shouldn't be persisted.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" || c.configurationDir == "" {
		return ""
	}
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(c.configurationDir, c.HistoryFile)
}

// OpenEventLog opens the event log in an append only state. It returns
// nil if the log is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	return c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, os.ErrNotExist
	}
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration. It isn't attached to a
// directory so nothing it does is persisted.
func Default() *Configuration {
	out := defaultConfig()
	out.HistoryFile = ""
	out.EventLog = ""
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
