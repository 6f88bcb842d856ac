// Package config loads CLI settings with viper: defaults, an optional
// tourguide.yaml, TOURGUIDE_* environment variables, then flags.
package config
