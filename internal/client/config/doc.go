// Package config loads runtime configuration for the taskkeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config or $TASKKEEPER_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-d string   path of the local SQLite cache
//	-t int      request timeout (seconds)
//	-i int      background sync interval (seconds, 0 disables)
//	-r float    outbound requests per second (0 disables limiting)
//	-l string   log file (rotated)
//	-v string   log level: debug, info, warn, error
//	-e string   S3 endpoint for media uploads
//	-g string   S3 region
//	-b string   S3 bucket
//	-u string   S3 access key
//	-p string   S3 secret key
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "https://api.example.com",
//	  "database_path": "/var/lib/taskkeeper/cache.db",
//	  "request_timeout": "15s",
//	  "sync_interval": "1m",
//	  "rate_limit": 5,
//	  "log_file": "/var/log/taskkeeper.log",
//	  "log_level": "debug",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_region": "us-east-1",
//	  "s3_bucket": "media",
//	  "s3_access_key": "minio",
//	  "s3_secret_key": "minio123"
//	}
package config
