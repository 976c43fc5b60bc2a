package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
	AppLogName        = "app.log"
)

// DefaultPrompt is used when the configured prompt is empty.
const DefaultPrompt = `\u@\h:\w\$ `

type Configuration struct {
	configFs afero.Fs

	// Prompt is printed before each command is read. The escapes \u, \h
	// and \w expand to the user, hostname, and working directory.
	Prompt string `json:"prompt" validate:"required"`

	// Motd is printed once when the shell starts.
	Motd string `json:"motd"`
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
		// Default() and zero-value configurations have no backing
		// directory, keep their logs in memory.
		c.configFs = afero.NewMemMapFs()
	}
	return c.configFs
}

// OpenAppLog opens the audit log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadAppLog opens the audit log for reading.
func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}
