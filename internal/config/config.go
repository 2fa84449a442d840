package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, e.g.
// LIFEPROGRESS_DATASET_URL.
const EnvPrefix = "LIFEPROGRESS"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Birthday string
	Gender   string
	Nation   string
	Search   string
	View     string
	Serve    bool
	Port     int
	Dataset  Dataset
	Log      Log
}

type Dataset struct {
	URL      string
	File     string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type Log struct {
	Level  string
	Format string
}

// NewFlagSet declares every flag Load understands.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringP("birthday", "b", "", "birthday as YYYY-MM-DD, YYYYMMDD or millisecond timestamp")
	fs.StringP("gender", "g", "", "male or female")
	fs.StringP("nation", "n", "", "nation name, exactly as in the dataset")
	fs.StringP("search", "s", "", "fuzzy search nation names")
	fs.String("view", "", "show the lifespan record of a nation")
	fs.Bool("serve", false, "run the HTTP API")
	fs.IntP("port", "p", 8080, "HTTP listen port")
	fs.String("dataset-url", "", "URL of a JSON lifespan dataset")
	fs.String("dataset-file", "", "path of a JSON lifespan dataset")
	fs.Duration("dataset-timeout", 5*time.Second, "timeout for dataset downloads")
	fs.Duration("cache-ttl", time.Hour, "how long a fetched dataset is reused, 0 disables")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-format", "console", "console or json")
	return fs
}

// Load parses args with fs and overlays LIFEPROGRESS_* environment
// variables for flags that were not given.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}
	v.AutomaticEnv()

	cfg := Config{
		Birthday: v.GetString("birthday"),
		Gender:   v.GetString("gender"),
		Nation:   v.GetString("nation"),
		Search:   v.GetString("search"),
		View:     v.GetString("view"),
		Serve:    v.GetBool("serve"),
		Port:     v.GetInt("port"),
		Dataset: Dataset{
			URL:      v.GetString("dataset-url"),
			File:     v.GetString("dataset-file"),
			Timeout:  v.GetDuration("dataset-timeout"),
			CacheTTL: v.GetDuration("cache-ttl"),
		},
		Log: Log{
			Level:  v.GetString("log-level"),
			Format: v.GetString("log-format"),
		},
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Port)
	}
	if c.Dataset.Timeout <= 0 {
		return fmt.Errorf("%w: dataset timeout %s", ErrInvalid, c.Dataset.Timeout)
	}
	if c.Dataset.CacheTTL < 0 {
		return fmt.Errorf("%w: cache ttl %s", ErrInvalid, c.Dataset.CacheTTL)
	}
	if c.Dataset.URL != "" && c.Dataset.File != "" {
		return fmt.Errorf("%w: dataset-url and dataset-file are exclusive", ErrInvalid)
	}
	return nil
}
