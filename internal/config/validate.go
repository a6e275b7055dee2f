package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Playback.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playback: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}
	if err := c.Watch.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("watch: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks PlaybackConfig for errors.
func (c *PlaybackConfig) Validate() error {
	if err := checkStruct(c); err != nil {
		return err
	}
	if c.MaxSpeed > 0 && c.MaxSpeed < c.DefaultSpeed {
		return errors.New("max_speed must be at least default_speed")
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	return checkStruct(c)
}

// Validate checks ServerConfig for errors.
func (c *ServerConfig) Validate() error {
	return checkStruct(c)
}

// Validate checks WatchConfig for errors.
func (c *WatchConfig) Validate() error {
	return checkStruct(c)
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	return checkStruct(c)
}

// checkStruct runs the struct tag rules and reports failures by toml key.
func checkStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := tomlKey(fe.StructField())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("invalid %s: %v (must be one of %s)", name, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "url":
		return fmt.Sprintf("invalid %s: %v", name, fe.Value())
	default:
		return fmt.Sprintf("invalid %s (%s)", name, fe.Tag())
	}
}

// tomlKey converts a Go field name such as RefreshInterval to refresh_interval.
func tomlKey(field string) string {
	switch field {
	case "FPS":
		return "fps"
	case "BaseURL":
		return "base_url"
	}

	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
