package config

import (
	"os"
	"strings"

	"github.com/qidk-tools/qidkmon/internal/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultADBPath  = "adb"
	DefaultInterval = 5
	DefaultTimeout  = 10
	DefaultLogFile  = "qidk_performance_log.csv"
	DefaultLogLevel = "info"
	DefaultDBPath   = "/var/lib/qidkmon/samples.db"

	envConfigFile = "QIDKMON_CONFIG"
	envPrefix     = "QIDKMON"
)

// Config carries all runtime settings for the sampler daemon.
type Config struct {
	ADB         string `mapstructure:"adb"`
	Serial      string `mapstructure:"serial"`
	Interval    int    `mapstructure:"interval"`
	Timeout     int    `mapstructure:"timeout"`
	LogFile     string `mapstructure:"logfile"`
	Telemetry   bool   `mapstructure:"telemetry"`
	Database    string `mapstructure:"database"`
	Postgres    string `mapstructure:"postgres"`
	Listen      string `mapstructure:"listen"`
	LogLevel    string `mapstructure:"log_level"`
	Debug       bool   `mapstructure:"debug"`
	Verbose     bool   `mapstructure:"verbose"`
	DumpCPUInfo bool   `mapstructure:"dump_cpuinfo"`
}

func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet("qidkmon", pflag.ContinueOnError)
	fs.String("adb", DefaultADBPath, "Path to the adb binary")
	fs.String("serial", "", "Target device serial (adb -s)")
	fs.Int("interval", DefaultInterval, "Seconds between samples")
	fs.Int("timeout", DefaultTimeout, "Per-query shell timeout in seconds")
	fs.String("logfile", DefaultLogFile, "CSV output file")
	fs.Bool("telemetry", false, "Enable local sample database")
	fs.String("database", DefaultDBPath, "Path to the sample database")
	fs.String("postgres", "", "Postgres DSN for long-term sample storage")
	fs.String("listen", "", "Prometheus metrics listen address (empty disables)")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	fs.Bool("dump-cpuinfo", false, "Print the device cpuinfo dump and exit")

	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("adb", DefaultADBPath)
	v.SetDefault("serial", "")
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("logfile", DefaultLogFile)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", DefaultDBPath)
	v.SetDefault("postgres", "")
	v.SetDefault("listen", "")
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(envConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file").WithData(err.Error())
		}
	} else {
		v.SetConfigName("qidkmon")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file").WithData(err.Error())
			}
		}
	}

	// Command line flags take precedence over file and environment values
	bindings := map[string]string{
		"adb":          "adb",
		"serial":       "serial",
		"interval":     "interval",
		"timeout":      "timeout",
		"logfile":      "logfile",
		"telemetry":    "telemetry",
		"database":     "database",
		"postgres":     "postgres",
		"listen":       "listen",
		"log_level":    "log-level",
		"debug":        "debug",
		"verbose":      "verbose",
		"dump_cpuinfo": "dump-cpuinfo",
	}
	for key, flagName := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	applyLogLevel(config)

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if c.Timeout < 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, c.Timeout)
	}
	if !validLogLevel(c.LogLevel) {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.Telemetry && c.Database == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "telemetry enabled without a database path")
	}

	return nil
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warning", "warn", "error":
		return true
	default:
		return false
	}
}

func applyLogLevel(c *Config) {
	switch {
	case c.Debug || c.LogLevel == "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case c.Verbose || c.LogLevel == "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case c.LogLevel == "warning" || c.LogLevel == "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
}
