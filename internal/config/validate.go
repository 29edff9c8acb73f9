package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Validate reports every missing or invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	required := func(name, value string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}

	required("atlas.publicKey", c.Atlas.PublicKey)
	required("atlas.privateKey", c.Atlas.PrivateKey)
	required("atlas.projectId", c.Atlas.ProjectID)
	required("atlas.clusterName", c.Atlas.ClusterName)
	required("storage.bucket", c.Storage.Bucket)
	required("storage.accessKeyId", c.Storage.AccessKeyID)
	required("storage.secretAccessKey", c.Storage.SecretAccessKey)

	errs = append(errs, c.validateRetention()...)
	errs = append(errs, c.validateCommon()...)

	switch c.Transfer.Mode {
	case "rclone":
		required("transfer.program", c.Transfer.Program)
	case "native":
	default:
		errs = append(errs, fmt.Errorf("invalid transfer.mode %q (want rclone or native)", c.Transfer.Mode))
	}

	return errors.Join(errs...)
}

// ValidateStorage checks only what the storage-facing commands need.
func (c *Config) ValidateStorage() error {
	var errs []error
	if c.Storage.Bucket == "" {
		errs = append(errs, fmt.Errorf("storage.bucket is required"))
	}
	if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
		errs = append(errs, fmt.Errorf("storage.accessKeyId and storage.secretAccessKey are required"))
	}
	return errors.Join(errs...)
}

// ValidatePrune checks what a retention-only run needs.
func (c *Config) ValidatePrune() error {
	errs := []error{c.ValidateStorage()}
	if c.Atlas.ClusterName == "" {
		errs = append(errs, fmt.Errorf("atlas.clusterName is required"))
	}
	errs = append(errs, c.validateRetention()...)
	errs = append(errs, c.validateCommon()...)
	return errors.Join(errs...)
}

// ValidateAtlas checks what a read-only snapshot listing needs.
func (c *Config) ValidateAtlas() error {
	var errs []error
	for _, kv := range [][2]string{
		{"atlas.publicKey", c.Atlas.PublicKey},
		{"atlas.privateKey", c.Atlas.PrivateKey},
		{"atlas.projectId", c.Atlas.ProjectID},
		{"atlas.clusterName", c.Atlas.ClusterName},
	} {
		if kv[1] == "" {
			errs = append(errs, fmt.Errorf("%s is required", kv[0]))
		}
	}
	errs = append(errs, c.validateWindow()...)
	return errors.Join(errs...)
}

// validateRetention rejects unset retention keys. Left at zero they would
// delete every copy older than the window with no floor.
func (c *Config) validateRetention() []error {
	var errs []error
	if !c.Retention.DaysSet {
		errs = append(errs, fmt.Errorf("retention.days is required (%s)", EnvRetentionDays))
	} else if c.Retention.Days < 0 {
		errs = append(errs, fmt.Errorf("invalid retention.days: %d", c.Retention.Days))
	}
	if !c.Retention.MinCountSet {
		errs = append(errs, fmt.Errorf("retention.minCount is required (%s)", EnvRetentionCount))
	} else if c.Retention.MinCount < 0 {
		errs = append(errs, fmt.Errorf("invalid retention.minCount: %d", c.Retention.MinCount))
	}
	return errs
}

func (c *Config) validateCommon() []error {
	var errs []error
	if c.Atlas.Poll.MaxRetries <= 0 {
		errs = append(errs, fmt.Errorf("invalid atlas.poll.maxRetries: %d", c.Atlas.Poll.MaxRetries))
	}
	if c.Atlas.Poll.Interval < 0 {
		errs = append(errs, fmt.Errorf("invalid atlas.poll.interval: %s", c.Atlas.Poll.Interval))
	}
	return append(errs, c.validateWindow()...)
}

func (c *Config) validateWindow() []error {
	var errs []error
	if _, err := cron.ParseStandard(c.Window.Cron); err != nil {
		errs = append(errs, fmt.Errorf("invalid window.cron %q: %w", c.Window.Cron, err))
	}
	if _, err := time.LoadLocation(c.Window.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid window.timezone %q: %w", c.Window.Timezone, err))
	}
	return errs
}
