// Package config loads environment variables into tagged structs.
//
// A .env file in the working directory is read once on first use, without
// overriding variables already set in the process. Parsing is done by
// caarlos0/env, so struct fields use its env and envDefault tags:
//
//	type Config struct {
//		Host string `env:"SMTP_SERVER,required"`
//		Port int    `env:"SMTP_PORT" envDefault:"587"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Errors wrap ErrParsing and name the offending variables.
package config
