package main

import (
	"log/slog"
	"strings"
	"sync"

	"NewsAlerts/internal/app"
	"NewsAlerts/internal/config"
	"NewsAlerts/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     config.Config
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() config.Config {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config = config.Load(path)
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			c.config.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
	})
	return c.config
}

func (c *commandContext) logger() *slog.Logger {
	return logging.New(c.ensureConfig().Logging.Level)
}

func (c *commandContext) application(opts app.Options) (*app.Application, error) {
	return app.New(c.ensureConfig(), c.logger(), opts)
}
