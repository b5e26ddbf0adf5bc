// Package config loads babelink configuration with Viper.
//
// Values come from a YAML file, then a .env file loaded with godotenv, then
// environment variables carrying the service prefix. BABELINK_SERVER_PORT
// overrides server.port and BABELINK_TRANSLATION_API_KEY overrides
// translation.api_key.
//
// # Usage
//
//	var cfg app.Config
//	err := config.LoadConfig("babelink", &cfg, config.WithConfigFile(path))
package config
