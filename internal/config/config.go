// Package config loads emargement settings from defaults, an optional config
// file, an optional .env file and EMARGEMENT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ukaji3/emargement-go/pkg/emargement/parser"
)

// EnvPrefix prefixes every environment override, e.g. EMARGEMENT_OUTPUT_DIR.
const EnvPrefix = "EMARGEMENT"

// Config holds the settings shared by every command. Keys follow the
// mapstructure tags in files and, upper-cased with EnvPrefix, in the environment.
type Config struct {
	OutputDir           string        `mapstructure:"output_dir" validate:"required"`
	NotificationTimeout time.Duration `mapstructure:"notification_timeout" validate:"gt=0"`
	LogLevel            string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	MaxUploadBytes      int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	locale := fr.New()
	translator, _ = ut.New(locale, locale).GetTranslator("fr")
	_ = fr_translations.RegisterDefaultTranslations(validate, translator)

	// Report config keys rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
}

// Load reads the configuration, searching the working directory and the user
// config directory for emargement.{yaml,toml,json} and .env.
func Load() (*Config, error) {
	return load(searchDirs())
}

func load(dirs []string) (*Config, error) {
	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, fmt.Errorf("loading %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetDefault("output_dir", ".")
	v.SetDefault("notification_timeout", 6*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("max_upload_bytes", int64(parser.DefaultMaxBytes))

	v.SetConfigName("emargement")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.OutputDir = expandTilde(cfg.OutputDir)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the commands cannot work with. The notification
// timeout must be positive; there is no setting that disables auto-dismiss.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = fe.Translate(translator)
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func searchDirs() []string {
	dirs := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "emargement"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "emargement"))
	}
	return dirs
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
