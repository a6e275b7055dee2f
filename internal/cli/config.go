package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/tessro/reel/internal/config"
	rerrors "github.com/tessro/reel/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing reel configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values, including defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Print the configuration file in use, or where 'config init' would create one.`,
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  playback.fps            Maximum frame advances per second
  playback.default_speed  Speed restored by stop, step and seek
  playback.max_speed      Cap for repeated speed doubling (0 = none)
  playback.autoplay       Start playing as soon as a replay loads
  tui.theme               auto, dark or light
  tui.charset             ascii or cp437
  tui.refresh_interval    Screen refresh cadence in milliseconds
  tui.show_debug          Show the value table on start
  server.base_url         Game server to fetch replays from
  server.timeout          Request timeout in seconds
  watch.enabled           Reload replay files when they change
  watch.debounce          Reload delay in milliseconds
  log.level               debug, info, warn or error
  log.file                Write logs to this file

Examples:
  reel config set playback.fps 30
  reel config set server.base_url https://game.example.com`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return PrintJSON(cmd.OutOrStdout(), cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(cmd.OutOrStdout())
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	_, err := os.Stat(path)
	exists := err == nil

	if JSONOutput() {
		return PrintJSON(cmd.OutOrStdout(), map[string]any{
			"path":   path,
			"exists": exists,
		})
	}

	if exists {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (not created yet)\n", path)
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", rerrors.ErrConfigNotFound, configPath)
	}

	// Find editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	if JSONOutput() {
		return PrintJSON(cmd.OutOrStdout(), map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file: %s\n", configPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Set server.base_url to fetch replays with --game and --user")
	fmt.Fprintln(out, "  2. Run 'reel play <file>' to watch a replay")
	return nil
}

// getConfigPath returns the --config flag, the config file in use, or the
// default location for a new one.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path := config.FindConfigFile(); path != "" {
		return path
	}
	if path := config.DefaultPath(); path != "" {
		return path
	}
	return ".reelrc"
}

// writeConfigFile encodes v as TOML with the standard header.
func writeConfigFile(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# Reel Configuration\n\n")

	encoder := toml.NewEncoder(&buf)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	configPath := getConfigPath()

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", rerrors.ErrConfigNotFound, configPath)
	}

	// Read the current config file as raw TOML
	var rawConfig map[string]any
	if _, err := toml.DecodeFile(configPath, &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if rawConfig == nil {
		rawConfig = make(map[string]any)
	}

	if err := setRawValue(rawConfig, key, value); err != nil {
		return err
	}

	// Reject values the loader would refuse before touching the file
	if err := validateRaw(rawConfig); err != nil {
		return fmt.Errorf("%w: %w", rerrors.ErrInvalidConfig, err)
	}

	if err := writeConfigFile(configPath, rawConfig); err != nil {
		return err
	}

	if JSONOutput() {
		return PrintJSON(cmd.OutOrStdout(), map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// setRawValue stores value under a "section.key" path, typed by key.
func setRawValue(raw map[string]any, key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid key format. Use 'section.key' (e.g., playback.fps)")
	}
	section, field := parts[0], parts[1]

	var typed any
	switch key {
	case "playback.fps", "tui.refresh_interval", "server.timeout", "watch.debounce":
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value must be an integer for %s", key)
		}
		typed = int64(i)
	case "playback.default_speed", "playback.max_speed":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("value must be a number for %s", key)
		}
		typed = f
	case "playback.autoplay", "tui.show_debug", "watch.enabled":
		typed = value == "true" || value == "1" || value == "yes"
	case "tui.theme", "tui.charset", "server.base_url", "log.level", "log.file":
		typed = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	sectionMap, ok := raw[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		raw[section] = sectionMap
	}
	sectionMap[field] = typed
	return nil
}

func validateRaw(raw map[string]any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return err
	}
	var c config.Config
	if _, err := toml.Decode(buf.String(), &c); err != nil {
		return err
	}
	c.ApplyDefaults()
	return c.Validate()
}
