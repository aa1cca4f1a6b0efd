// Package config provides configuration management for the storefront.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from 'default' struct tags on the
// partial config structs, and every key can be overridden through
// an environment variable using underscore-separated nesting
// (e.g. DATABASE_HOST, POS_SECRET, ENRICH_BASE_URL).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
