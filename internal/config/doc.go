// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv, done in main) and the process environment,
// with defaults suitable for a local emulator on the standard LocalStack port.
package config
