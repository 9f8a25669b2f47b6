// Package config loads appcatalog settings.
//
// Values are layered, later layers winning: built-in defaults, an
// appcatalog.yaml file, variables from .env files, APPCATALOG_* environment
// variables and finally command-line flags bound to the returned viper
// instance. Nested keys use an underscore in the environment, so
// search.nameBoost is APPCATALOG_SEARCH_NAMEBOOST.
package config
