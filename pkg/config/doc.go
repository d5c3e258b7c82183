// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// the default .env file (if any) is read into the process environment
// once, then structs are populated from `env` field tags. Each unique
// struct type is parsed at most once per process and cached, so
// independent components can load their own config without coordination.
//
// Define a struct with env tags:
//
//	type PostgresConfig struct {
//	    ConnectionString string `env:"DATABASE_URL,required"`
//	    MaxConns         int32  `env:"DB_MAX_CONNS" envDefault:"10"`
//	}
//
// and load it:
//
//	var cfg PostgresConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("config: %v", err)
//	}
//
// Failures can be classified with errors.Is against ErrParsingConfig,
// ErrConfigNotLoaded, and ErrNilPointer. MustLoad panics instead of
// returning an error, for config the process cannot run without.
package config
