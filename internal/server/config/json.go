package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/duoledger/internal/flagx"
	"github.com/dmitrijs2005/duoledger/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so they can be written as "15s" or as integer nanoseconds.
// Pointers distinguish "absent" from "explicitly false/zero".
type JsonConfig struct {
	HTTPAddr            string          `json:"http_addr"`
	HealthAddrGRPC      *string         `json:"health_addr_grpc"`
	DatabaseDSN         string          `json:"database_dsn"`
	SecretKey           string          `json:"secret_key"`
	BaseURL             string          `json:"base_url"`
	Production          *bool           `json:"production"`
	StaticDir           string          `json:"static_dir"`
	LogFormat           string          `json:"log_format"`
	Notifier            string          `json:"notifier"`
	HealthCheckInterval *timex.Duration `json:"health_check_interval"`
	ShutdownTimeout     *timex.Duration `json:"shutdown_timeout"`
	SMTPHost            string          `json:"smtp_host"`
	SMTPPort            int             `json:"smtp_port"`
	SMTPUser            string          `json:"smtp_user"`
	SMTPPassword        string          `json:"smtp_password"`
	MailFrom            string          `json:"mail_from"`
	S3AccessKey         string          `json:"s3_access_key"`
	S3SecretKey         string          `json:"s3_secret_key"`
	S3Bucket            string          `json:"s3_bucket"`
	S3Region            string          `json:"s3_region"`
	S3BaseEndpoint      string          `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c/-config (if any) and overlays every
// field present in it onto config. Unreadable files or invalid JSON panic:
// a half-applied configuration is worse than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	if c.HealthAddrGRPC != nil {
		config.HealthAddrGRPC = *c.HealthAddrGRPC
	}
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.BaseURL, c.BaseURL)
	if c.Production != nil {
		config.Production = *c.Production
	}
	setString(&config.StaticDir, c.StaticDir)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.Notifier, c.Notifier)
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	setString(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
