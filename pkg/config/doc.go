// Package config loads typed configuration.
//
// Load parses environment variables into a struct with
// github.com/caarlos0/env/v11 after reading a .env file through
// github.com/joho/godotenv. Each configuration type is parsed once and
// cached for the life of the process.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadYAML decodes a YAML document, such as a benchmark profile, with
// gopkg.in/yaml.v3 and rejects unknown fields.
package config
