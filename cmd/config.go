package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/daybrief/daybrief/models"
	"github.com/daybrief/daybrief/types"
)

const (
	configName = ".daybrief"
	envPrefix  = "DAYBRIEF"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return models.ValidateStruct(config)
}

// GetConfig returns the loaded application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// InitConfig reads in the config file and matching ENV variables.
func InitConfig() {
	// Load .env first if present; it is fine when none exists.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g. DAYBRIEF_SUPABASE_URL
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
	} else if cfgFileFlag != "" {
		fmt.Fprintln(os.Stderr, "Error: specified config file not found:", cfgFileFlag)
	}

	setConfigDefaults()

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error validating config: %s\n", err)
		os.Exit(1)
	}
}

func setConfigDefaults() {
	home, _ := os.UserHomeDir()

	viper.SetDefault("data.dir", home+"/.daybrief")
	viper.SetDefault("data.backend", "file")

	viper.SetDefault("supabase.url", "")
	viper.SetDefault("supabase.anonKey", "")

	viper.SetDefault("sync.intervalSeconds", 30)

	viper.SetDefault("news.maxArticles", 12)
	viper.SetDefault("news.maxPerFeed", 5)

	viper.SetDefault("llm.modelName", "gpt-4o-mini")
	viper.SetDefault("llm.apiKey", "")
	viper.SetDefault("llm.ttsModel", "tts-1")
	viper.SetDefault("llm.ttsVoice", "nova")
}
