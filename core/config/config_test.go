package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, `\u@\h:\w\$ `, cfg.Prompt)
	assert.Equal(t, "\nReceived Ctrl+C. Type 'exit' to quit.", cfg.InterruptMessage)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.Dir())
	assert.Empty(t, cfg.HistoryPath())

	fd, err := cfg.OpenEventLog()
	assert.Nil(t, err)
	assert.Nil(t, fd)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate    func(*Configuration)
		wantField string
	}{
		"default": {
			mutate: func(*Configuration) {},
		},
		"unlimited history": {
			mutate: func(c *Configuration) { c.HistoryLimit = -1 },
		},
		"bad history limit": {
			mutate:    func(c *Configuration) { c.HistoryLimit = -2 },
			wantField: "history_limit",
		},
		"missing path": {
			mutate:    func(c *Configuration) { c.DefaultPath = "" },
			wantField: "default_path",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantField == "" {
				assert.Nil(t, err)
				return
			}

			var validationErrs validator.ValidationErrors
			if assert.ErrorAs(t, err, &validationErrs) {
				assert.Equal(t, tc.wantField, validationErrs[0].Field())
			}
		})
	}
}
