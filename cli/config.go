package cli

import (
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/viant/testid/cache"
	"github.com/viant/testid/parser"
	"github.com/viant/testid/repository"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configFolderPath = "."

	attributeFlagName   = "attribute"
	optionsFlagName     = "options"
	outputFlagName      = "output"
	dryRunFlagName      = "dry-run"
	concurrencyFlagName = "concurrency"
	noCacheFlagName     = "no-cache"
	cacheFlagName       = "cache"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"
	maxFileSizeFlagName = "max-file-size"

	attributeKey   = "attribute"
	optionsKey     = "options"
	concurrencyKey = "annotate.concurrency"
	cachePathKey   = "cache.path"
	noCacheKey     = "cache.disabled"
	maxFileSizeKey = "parser.max_file_size"

	defaultConcurrency = 4

	envPrefix = "TESTID"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".testid.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// newConfig creates the command configuration: testid.yaml in the working directory,
// TESTID_ prefixed environment variables and defaults. Flags are bound per command.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(filepath.Join(configFolderPath, repository.ConfigFile))
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault(configVersionKey, currentConfigVersion)
	v.SetDefault(attributeKey, "")
	v.SetDefault(optionsKey, "")
	v.SetDefault(concurrencyKey, defaultConcurrency)
	v.SetDefault(cachePathKey, cache.DefaultPath)
	v.SetDefault(noCacheKey, false)
	v.SetDefault(maxFileSizeKey, parser.DefaultMaxFileSize)

	v.SetDefault(logFilenameKey, defaultLogFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	// a missing config file leaves env and defaults in place
	_ = v.ReadInConfig()
	return v
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// numeric slog levels, e.g. -4 for debug
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs a rotating file logger as the slog default.
// It logs at the configured level, or Debug when verbose is set.
func configureLogger(v *viper.Viper, verbose bool) *slog.Logger {
	logPath := strings.TrimSpace(v.GetString(logFilenameKey))
	if logPath == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(v.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    v.GetInt(logMaxSizeKey),
		MaxBackups: v.GetInt(logMaxBackupsKey),
		MaxAge:     v.GetInt(logMaxAgeKey),
		Compress:   v.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
