package main

import (
	"time"

	"github.com/kbukum/lazyseq/config"
	"github.com/kbukum/lazyseq/observability"
	"github.com/kbukum/lazyseq/validation"
)

// Config is the seqdemo configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Demo                 DemoConfig           `yaml:"demo" mapstructure:"demo"`
}

// DemoConfig shapes the pipelines the demo runs.
type DemoConfig struct {
	// Mode selects the pipelines: sync, async or all.
	Mode string `yaml:"mode" mapstructure:"mode" validate:"oneof=sync async all"`
	// Take is how many even naturals the sync pipeline keeps.
	Take int `yaml:"take" mapstructure:"take" validate:"gte=0,lte=10000"`
	// JoinLimit caps joined output; -1 joins everything.
	JoinLimit int `yaml:"join_limit" mapstructure:"join_limit" validate:"limit"`
	// Chunk is the chunk size used when summing batches.
	Chunk int `yaml:"chunk" mapstructure:"chunk" validate:"gte=1,lte=1000"`
	// Tasks is the number of concurrent futures the async pipeline awaits.
	Tasks   int           `yaml:"tasks" mapstructure:"tasks" validate:"gte=1,lte=1000"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
}

func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	if c.Demo.Mode == "" {
		c.Demo.Mode = "all"
	}
	if c.Demo.Take == 0 {
		c.Demo.Take = 20
	}
	if c.Demo.JoinLimit == 0 {
		c.Demo.JoinLimit = 10
	}
	if c.Demo.Chunk == 0 {
		c.Demo.Chunk = 4
	}
	if c.Demo.Tasks == 0 {
		c.Demo.Tasks = 5
	}
	if c.Demo.Timeout == 0 {
		c.Demo.Timeout = 5 * time.Second
	}
}

// Validate checks the service section, then every tagged field of the
// telemetry and demo sections.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}
