// Package config loads runtime configuration for the admin console CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Environment variables prefixed with EVENTADMIN_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// The API base URL is never configured directly. It is derived once from
// Environment when loading finishes and does not change afterwards.
//
// Supported flags
//
//	-e string   environment: dev, prod or local
//	-t int      per-request timeout (seconds)
//	-p string   value of the Platform header
//	-d string   path to the session database
//	-v          log HTTP traffic (headers only, tokens masked)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "environment": "prod",
//	  "request_timeout": "10s",
//	  "platform": "android",
//	  "db_path": "/home/me/.config/eventadmin/session.db",
//	  "store_key": "",
//	  "debug": false,
//	  "log_level": "info"
//	}
package config
