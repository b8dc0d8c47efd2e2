// Package config loads command configuration with Viper.
//
// Values come from, in increasing precedence: config.yml, a .env file
// loaded with godotenv, and environment variables carrying the command
// prefix. Files are looked up under ./cmd/<name>/ and the working
// directory unless given explicitly.
//
//	var cfg DemoConfig
//	if err := config.Load("seqdemo", &cfg, config.WithConfigFile(path)); err != nil {
//	    return err
//	}
package config
