package config

import "github.com/spf13/viper"

// ServerConfig holds settings for the run-history report server
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads report server configuration from the environment
func LoadServerConfig() ServerConfig {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")

	return ServerConfig{
		Port: v.GetString("PORT"),
	}
}
