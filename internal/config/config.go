package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env  string
		Name string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	OpenAI struct {
		APIKey         string `mapstructure:"api_key"`
		Model          string
		TimeoutSeconds int `mapstructure:"timeout_seconds"`
	} `mapstructure:"openai"`

	Uploads struct {
		MaxSizeMB int `mapstructure:"max_size_mb"`
	} `mapstructure:"uploads"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// Env overrides, e.g. APP_OPENAI_API_KEY for secrets kept out of the file.
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
