package mediadeck

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/retr0680/mediadeck/pkg/mediadeck/util"
)

// CanonicalConfig provides centralized access to configuration fields
type CanonicalConfig struct {
	PollInterval    time.Duration
	QueryTimeout    time.Duration
	CommandTimeout  time.Duration
	AutomationDelay time.Duration

	ThumbnailMaxBytes         int
	PreferForeground          bool
	DumpUndecodableThumbnails bool

	logger             *zap.SugaredLogger
	notifier           Notifier
	stopWatcherChannel chan struct{}

	reloadConsumers []chan bool

	userConfig *viper.Viper
}

const (
	userConfigFilepath = "config.yaml"

	userConfigName = "config"
	userConfigPath = "."
	configType     = "yaml"

	configKeyPollIntervalMs        = "poll_interval_ms"
	configKeyQueryTimeoutMs        = "query_timeout_ms"
	configKeyCommandTimeoutMs      = "command_timeout_ms"
	configKeyAutomationDelaySecs   = "automation_delay_seconds"
	configKeyThumbnailMaxBytes     = "thumbnail_max_bytes"
	configKeyPreferForeground      = "prefer_foreground"
	configKeyDumpUndecodableThumbs = "dump_undecodable_thumbnails"

	defaultPollIntervalMs      = 900
	defaultQueryTimeoutMs      = 900
	defaultCommandTimeoutMs    = 900
	defaultAutomationDelaySecs = 300

	defaultThumbnailMaxBytes = 5_000_000
	defaultAutomationDelay   = defaultAutomationDelaySecs * time.Second

	// Coalesces the editor's burst of write events into one reload.
	configReloadCooldown = 500 * time.Millisecond
)

// NewConfig initializes the configuration manager
func NewConfig(logger *zap.SugaredLogger, notifier Notifier) (*CanonicalConfig, error) {
	logger = logger.Named("config")

	cc := &CanonicalConfig{
		logger:             logger,
		notifier:           notifier,
		reloadConsumers:    make([]chan bool, 0),
		stopWatcherChannel: make(chan struct{}),
	}

	cc.userConfig = viper.New()
	cc.userConfig.SetConfigName(userConfigName)
	cc.userConfig.SetConfigType(configType)
	cc.userConfig.AddConfigPath(userConfigPath)

	cc.userConfig.SetDefault(configKeyPollIntervalMs, defaultPollIntervalMs)
	cc.userConfig.SetDefault(configKeyQueryTimeoutMs, defaultQueryTimeoutMs)
	cc.userConfig.SetDefault(configKeyCommandTimeoutMs, defaultCommandTimeoutMs)
	cc.userConfig.SetDefault(configKeyAutomationDelaySecs, defaultAutomationDelaySecs)
	cc.userConfig.SetDefault(configKeyThumbnailMaxBytes, defaultThumbnailMaxBytes)
	cc.userConfig.SetDefault(configKeyPreferForeground, false)
	cc.userConfig.SetDefault(configKeyDumpUndecodableThumbs, false)

	logger.Debug("Created configuration instance")

	return cc, nil
}

// Load reads the configuration file and populates the structured fields.
// A missing file is not an error - the widget runs fine on defaults.
func (cc *CanonicalConfig) Load() error {
	cc.logger.Debugw("Loading user configuration", "path", userConfigFilepath)

	if !util.FileExists(userConfigFilepath) {
		cc.logger.Debugw("No configuration file found, using defaults", "path", userConfigFilepath)
		return cc.populateFromViper()
	}

	if err := cc.userConfig.ReadInConfig(); err != nil {
		return cc.handleConfigError(err)
	}

	return cc.populateFromViper()
}

// SubscribeToChanges allows components to receive a ping whenever the
// configuration is reloaded.
func (cc *CanonicalConfig) SubscribeToChanges() chan bool {
	ch := make(chan bool)
	cc.reloadConsumers = append(cc.reloadConsumers, ch)
	return ch
}

// WatchConfigFileChanges reloads the config whenever the file is written to.
// Runs until StopWatchingConfigFile is called.
func (cc *CanonicalConfig) WatchConfigFileChanges() {
	cc.logger.Debugw("Starting to watch user config file for changes", "path", userConfigFilepath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cc.logger.Warnw("Failed to create filesystem watcher", "error", err)
		return
	}
	defer watcher.Close()

	configDir := filepath.Dir(userConfigFilepath)
	if err := watcher.Add(configDir); err != nil {
		cc.logger.Warnw("Failed to watch config directory", "dir", configDir, "error", err)
		return
	}

	lastReload := time.Time{}

	for {
		select {
		case <-cc.stopWatcherChannel:
			cc.logger.Debug("Stopping config file watcher")
			return

		case event := <-watcher.Events:
			if filepath.Base(event.Name) != userConfigFilepath || !event.Has(fsnotify.Write) {
				continue
			}
			if time.Since(lastReload) < configReloadCooldown {
				continue
			}
			lastReload = time.Now()

			cc.logger.Info("Config file modified, reloading")

			if err := cc.Load(); err != nil {
				cc.logger.Warnw("Failed to reload config file", "error", err)
				continue
			}

			for _, consumer := range cc.reloadConsumers {
				consumer <- true
			}

		case err := <-watcher.Errors:
			cc.logger.Warnw("Config file watcher error", "error", err)
		}
	}
}

// StopWatchingConfigFile signals the watcher to stop
func (cc *CanonicalConfig) StopWatchingConfigFile() {
	close(cc.stopWatcherChannel)
}

// handleConfigError processes errors during config file loading
func (cc *CanonicalConfig) handleConfigError(err error) error {
	cc.logger.Warnw("Failed to load configuration", "error", err)

	if strings.Contains(err.Error(), "yaml:") {
		cc.notifier.Notify("Invalid configuration format!",
			"Ensure the YAML file is properly formatted.")
	} else {
		cc.notifier.Notify("Error loading configuration!", "Check logs for more details.")
	}
	return fmt.Errorf("read user config: %w", err)
}

// populateFromViper reads configuration fields into structured fields
func (cc *CanonicalConfig) populateFromViper() error {
	cc.PollInterval = cc.validatePositiveMs("poll interval",
		cc.userConfig.GetInt(configKeyPollIntervalMs), defaultPollIntervalMs)
	cc.QueryTimeout = cc.validatePositiveMs("query timeout",
		cc.userConfig.GetInt(configKeyQueryTimeoutMs), defaultQueryTimeoutMs)
	cc.CommandTimeout = cc.validatePositiveMs("command timeout",
		cc.userConfig.GetInt(configKeyCommandTimeoutMs), defaultCommandTimeoutMs)

	delaySecs := cc.userConfig.GetInt(configKeyAutomationDelaySecs)
	if delaySecs <= 0 {
		cc.logger.Warnw("Invalid automation delay, using default",
			"invalidValue", delaySecs, "defaultValue", defaultAutomationDelaySecs)
		delaySecs = defaultAutomationDelaySecs
	}
	cc.AutomationDelay = time.Duration(delaySecs) * time.Second

	cc.ThumbnailMaxBytes = cc.userConfig.GetInt(configKeyThumbnailMaxBytes)
	if cc.ThumbnailMaxBytes <= 0 {
		cc.logger.Warnw("Invalid thumbnail buffer capacity, using default",
			"invalidValue", cc.ThumbnailMaxBytes, "defaultValue", defaultThumbnailMaxBytes)
		cc.ThumbnailMaxBytes = defaultThumbnailMaxBytes
	}

	cc.PreferForeground = cc.userConfig.GetBool(configKeyPreferForeground)
	cc.DumpUndecodableThumbnails = cc.userConfig.GetBool(configKeyDumpUndecodableThumbs)

	cc.logger.Debugw("Configuration populated successfully",
		"pollInterval", cc.PollInterval,
		"queryTimeout", cc.QueryTimeout,
		"commandTimeout", cc.CommandTimeout,
		"automationDelay", cc.AutomationDelay,
		"thumbnailMaxBytes", cc.ThumbnailMaxBytes,
		"preferForeground", cc.PreferForeground)

	return nil
}

func (cc *CanonicalConfig) validatePositiveMs(name string, ms int, defaultMs int) time.Duration {
	if ms <= 0 {
		cc.logger.Warnw(fmt.Sprintf("Invalid %s, using default", name),
			"invalidValue", ms, "defaultValue", defaultMs)
		ms = defaultMs
	}
	return time.Duration(ms) * time.Millisecond
}
