package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Environment keys understood by LoadEnv. They override the YAML file.
const (
	EnvAtlasPublicKey  = "MONGODB_ATLAS_PUBLIC_API_KEY"
	EnvAtlasPrivateKey = "MONGODB_ATLAS_PRIVATE_API_KEY"
	EnvAtlasProjectID  = "MONGODB_ATLAS_PROJECT_ID"
	EnvAtlasCluster    = "MONGODB_ATLAS_CLUSTER_NAME"
	EnvBucket          = "S3_BUCKET_NAME"
	EnvS3Provider      = "S3_PROVIDER"
	EnvS3AccessKeyID   = "S3_ACCESS_KEY_ID"
	EnvS3SecretKey     = "S3_SECRET_ACCESS_KEY"
	EnvS3Region        = "S3_REGION"
	EnvS3Endpoint      = "S3_ENDPOINT"
	EnvRetentionDays   = "SNAPSHOT_RETENTION_DAYS"
	EnvRetentionCount  = "SNAPSHOT_RETENTION_COUNT"
	EnvRcloneFlags     = "RCLONE_FLAGS"
	EnvLogLevel        = "LOG_LEVEL"
	EnvDotenvPath      = "DOTENV_PATH"
)

// DotenvPath returns the dotenv file named by DOTENV_PATH, or ".env".
func DotenvPath() string {
	if p := os.Getenv(EnvDotenvPath); p != "" {
		return p
	}
	return ".env"
}

// LoadEnv overlays process environment and the optional dotenv file onto cfg.
// Process environment wins over the dotenv file. A missing dotenv file is not
// an error.
func LoadEnv(cfg *Config, dotenvPath string) error {
	v := viper.New()
	v.AutomaticEnv()

	if dotenvPath != "" {
		v.SetConfigFile(dotenvPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return fmt.Errorf("reading dotenv %s: %w", dotenvPath, err)
			}
		}
	}

	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	str(EnvAtlasPublicKey, &cfg.Atlas.PublicKey)
	str(EnvAtlasPrivateKey, &cfg.Atlas.PrivateKey)
	str(EnvAtlasProjectID, &cfg.Atlas.ProjectID)
	str(EnvAtlasCluster, &cfg.Atlas.ClusterName)
	str(EnvBucket, &cfg.Storage.Bucket)
	str(EnvS3Provider, &cfg.Storage.Provider)
	str(EnvS3AccessKeyID, &cfg.Storage.AccessKeyID)
	str(EnvS3SecretKey, &cfg.Storage.SecretAccessKey)
	str(EnvS3Region, &cfg.Storage.Region)
	str(EnvS3Endpoint, &cfg.Storage.Endpoint)
	str(EnvRcloneFlags, &cfg.Transfer.Flags)

	if v.IsSet(EnvLogLevel) {
		cfg.Logging.Level = normalizeLevel(v.GetString(EnvLogLevel))
	}

	var errs []error
	num := func(key string, dst *int, set *bool) {
		if !v.IsSet(key) {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst, *set = n, true
	}
	num(EnvRetentionDays, &cfg.Retention.Days, &cfg.Retention.DaysSet)
	num(EnvRetentionCount, &cfg.Retention.MinCount, &cfg.Retention.MinCountSet)

	return errors.Join(errs...)
}

// normalizeLevel accepts python-style names such as "WARNING".
func normalizeLevel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "warning":
		return "warn"
	case "critical", "fatal":
		return "error"
	}
	return s
}
