package config

import "github.com/spf13/viper"

// Config holds everything both binaries need. The service key grants admin
// access to the hosted auth and storage APIs and must never reach a client.
type Config struct {
	DSN                string `mapstructure:"DSN"`
	Port               string `mapstructure:"PORT"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	SupabaseURL        string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey    string `mapstructure:"SUPABASE_ANON_KEY"`
	SupabaseServiceKey string `mapstructure:"SUPABASE_SERVICE_KEY"`
	IrisAPIKey         string `mapstructure:"IRIS_API_KEY"`
	AllowedOrigins     string `mapstructure:"ALLOWED_ORIGINS"`
}

// Load reads config.env from the working directory, with real environment
// variables taking precedence.
func Load() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if config.Port == "" {
		config.Port = "8080"
	}
	return
}
