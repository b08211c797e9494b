package config

import "github.com/spf13/viper"

// SetDefaults installs the default configuration values.
func SetDefaults() {
	viper.SetDefault("speech.engine", "auto") // auto-select best renderer
	viper.SetDefault("speech.rate", 0.3)
	viper.SetDefault("speech.language", "en-US")
	viper.SetDefault("speech.voice", "")
	viper.SetDefault("speech.cache_path", "")
	viper.SetDefault("fetch.user_agent", "pagereader/1.0")
	viper.SetDefault("history.path", "")
}
