// Package config loads calcbench configuration from CUE files, defaults and
// CALCBENCH_* environment variables.
package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "calcbench"
	// ConfigFileName is the name of the config file in the config directory.
	ConfigFileName = "config.cue"
	// LocalConfigFileName is looked up in the working directory.
	LocalConfigFileName = "calcbench.cue"
	// EnvPrefix prefixes environment overrides, e.g. CALCBENCH_REPORT_THRESHOLD.
	EnvPrefix = "CALCBENCH"
)

//go:embed config_schema.cue
var configSchema string

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath, if set, is the only file considered and must exist.
	ConfigFilePath string

	// ConfigDirPath overrides the per-user config directory.
	ConfigDirPath string

	// WorkDir overrides the directory searched for calcbench.cue.
	// Defaults to the current directory.
	WorkDir string
}

// ConfigDir returns $XDG_CONFIG_HOME/calcbench, falling back to
// ~/.config/calcbench.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}

// Load resolves the effective configuration and returns it together with
// the path of the file it was read from ("" when only defaults apply).
//
// Lookup order: opts.ConfigFilePath, <config dir>/config.cue,
// ./calcbench.cue. Environment variables override file values.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("engine.max_batch", defaults.Engine.MaxBatch)
	v.SetDefault("report.threshold", defaults.Report.Threshold)
	v.SetDefault("warmup.enabled", defaults.Warmup.Enabled)
	v.SetDefault("warmup.duration", defaults.Warmup.Duration)
	v.SetDefault("warmup.pin_cpu", defaults.Warmup.PinCPU)
	v.SetDefault("ui.prompt", defaults.UI.Prompt)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color", defaults.UI.Color)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolvePath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", fmt.Errorf("load configuration %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, path, nil
}

// resolvePath picks the config file to load, or "" for defaults only.
func resolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		return opts.ConfigFilePath, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if p := filepath.Join(dir, ConfigFileName); fileExists(p) {
		return p, nil
	}

	local := filepath.Join(opts.WorkDir, LocalConfigFileName)
	if fileExists(local) {
		return local, nil
	}
	return "", nil
}

// loadCUEIntoViper validates the file against #Config and merges it into v.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, userValue.Err())
	}

	// Unify with schema to validate against #Config definition
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// GenerateCUE renders cfg as a CUE document accepted by the schema.
func GenerateCUE(cfg *Config) string {
	var b strings.Builder
	b.WriteString("engine: {\n")
	fmt.Fprintf(&b, "\tmax_batch: %d\n", cfg.Engine.MaxBatch)
	b.WriteString("}\n\n")
	b.WriteString("report: {\n")
	fmt.Fprintf(&b, "\tthreshold: %d\n", cfg.Report.Threshold)
	b.WriteString("}\n\n")
	b.WriteString("warmup: {\n")
	fmt.Fprintf(&b, "\tenabled:  %t\n", cfg.Warmup.Enabled)
	fmt.Fprintf(&b, "\tduration: %q\n", cfg.Warmup.Duration.String())
	fmt.Fprintf(&b, "\tpin_cpu:  %d\n", cfg.Warmup.PinCPU)
	b.WriteString("}\n\n")
	b.WriteString("ui: {\n")
	fmt.Fprintf(&b, "\tprompt:  %q\n", cfg.UI.Prompt)
	fmt.Fprintf(&b, "\tverbose: %t\n", cfg.UI.Verbose)
	fmt.Fprintf(&b, "\tcolor:   %t\n", cfg.UI.Color)
	b.WriteString("}\n")
	return b.String()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
