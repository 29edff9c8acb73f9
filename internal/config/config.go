package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Atlas     AtlasConfig     `yaml:"atlas"`
	Storage   StorageConfig   `yaml:"storage"`
	Retention RetentionConfig `yaml:"retention"`
	Window    WindowConfig    `yaml:"window"`
	Transfer  TransferConfig  `yaml:"transfer"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type AtlasConfig struct {
	BaseURL     string     `yaml:"baseUrl"`
	PublicKey   string     `yaml:"publicKey"`
	PrivateKey  string     `yaml:"privateKey"`
	ProjectID   string     `yaml:"projectId"`
	ClusterName string     `yaml:"clusterName"`
	Poll        PollConfig `yaml:"poll"`
}

type PollConfig struct {
	MaxRetries int           `yaml:"maxRetries"`
	Interval   time.Duration `yaml:"interval"` // e.g. 10s
}

type StorageConfig struct {
	Provider        string `yaml:"provider"` // rclone s3 provider, e.g. "AWS", "Minio"
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
}

type RetentionConfig struct {
	Days     int  `yaml:"days"`
	MinCount int  `yaml:"minCount"`
	DryRun   bool `yaml:"dryRun"`

	// DaysSet and MinCountSet record whether a source provided the value.
	// Zero is a valid setting but never a default.
	DaysSet     bool `yaml:"-"`
	MinCountSet bool `yaml:"-"`
}

// UnmarshalYAML notes which retention keys carry a non-null value.
func (r *RetentionConfig) UnmarshalYAML(n *yaml.Node) error {
	type plain RetentionConfig
	if err := n.Decode((*plain)(r)); err != nil {
		return err
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i+1].Tag == "!!null" {
			continue
		}
		switch n.Content[i].Value {
		case "days":
			r.DaysSet = true
		case "minCount":
			r.MinCountSet = true
		}
	}
	return nil
}

type WindowConfig struct {
	Cron     string `yaml:"cron"`     // window boundaries, e.g. "0 0 * * *"
	Timezone string `yaml:"timezone"` // IANA name, e.g. "UTC"
}

type TransferConfig struct {
	Mode    string `yaml:"mode"`    // "rclone", "native"
	Program string `yaml:"program"` // rclone executable
	Flags   string `yaml:"flags"`   // extra rclone flags, space separated
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "text"
}

type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgatewayUrl"`
	Job            string `yaml:"job"`
}

const (
	DefaultPollMaxRetries = 100
	DefaultPollInterval   = 10 * time.Second
	DefaultWindowCron     = "0 0 * * *"
	DefaultTimezone       = "UTC"
	DefaultTransferMode   = "rclone"
	DefaultRcloneProgram  = "rclone"
	DefaultMetricsJob     = "atlas-archiver"
)

// Default returns a config with every optional field filled in.
func Default() *Config {
	return &Config{
		Atlas: AtlasConfig{
			Poll: PollConfig{
				MaxRetries: DefaultPollMaxRetries,
				Interval:   DefaultPollInterval,
			},
		},
		Window: WindowConfig{
			Cron:     DefaultWindowCron,
			Timezone: DefaultTimezone,
		},
		Transfer: TransferConfig{
			Mode:    DefaultTransferMode,
			Program: DefaultRcloneProgram,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Job: DefaultMetricsJob,
		},
	}
}
