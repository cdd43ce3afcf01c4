package configuration

import (
	"fmt"
	"os"
	"strconv"

	"omnipost/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Pubsub      Pubsub      `json:"pubsub"`
	Logger      Logger      `json:"logger"`
	OAuth       OAuth       `json:"oauth"`
	AI          AI          `json:"ai"`
	Publish     Publish     `json:"publish"`
	UI          UI          `json:"ui"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Mongo Db `json:"mongo"`
	Psql  Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

type Logger struct {
	Format string `json:"format"`
}

// OAuth holds redirect URIs per platform. App-level client id/secret pairs
// are per-user and live in the credential store, not here.
type OAuth struct {
	YouTube   OAuthRedirect `json:"youtube"`
	Instagram OAuthRedirect `json:"instagram"`
}

type OAuthRedirect struct {
	RedirectURI string `json:"redirectURI"`
}

type AI struct {
	GeminiAPIKey string `json:"geminiAPIKey"`
	BaseURL      string `json:"baseURL"`
}

// Publish tunes the Instagram container poll loop and per-call timeouts.
type Publish struct {
	ContainerPollIntervalMs int `json:"containerPollIntervalMs"`
	ContainerPollTimeoutMs  int `json:"containerPollTimeoutMs"`
	RequestTimeoutSeconds   int `json:"requestTimeoutSeconds"`
}

// UI holds the frontend routes callback handlers redirect to.
type UI struct {
	ConnectedAccountsURL string `json:"connectedAccountsURL"`
	ConfigurationURL     string `json:"configurationURL"`
}

var C Config

func init() {
	LoadConfig()
	initApp(&C)
	initOAuth(&C)
	initPublish(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10010
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10010
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initOAuth(C *Config) {
	base := fmt.Sprintf("http://localhost:%d", C.App.Port)
	C.OAuth.YouTube.RedirectURI = getConfigValue(C.OAuth.YouTube.RedirectURI, "YOUTUBE_REDIRECT_URI", base+"/auth/youtube/callback")
	C.OAuth.Instagram.RedirectURI = getConfigValue(C.OAuth.Instagram.RedirectURI, "INSTAGRAM_REDIRECT_URI", base+"/auth/instagram/callback")
	if C.UI.ConnectedAccountsURL == "" {
		C.UI.ConnectedAccountsURL = getEnv("UI_ACCOUNTS_URL", "http://localhost:3000/accounts")
	}
	if C.UI.ConfigurationURL == "" {
		C.UI.ConfigurationURL = getEnv("UI_CONFIG_URL", "http://localhost:3000/settings/api-keys")
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		C.AI.GeminiAPIKey = v
	}
}

func initPublish(C *Config) {
	if C.Publish.ContainerPollIntervalMs == 0 {
		C.Publish.ContainerPollIntervalMs = 2000
	}
	if C.Publish.ContainerPollTimeoutMs == 0 {
		C.Publish.ContainerPollTimeoutMs = 60000
	}
	if C.Publish.RequestTimeoutSeconds == 0 {
		C.Publish.RequestTimeoutSeconds = 120
	}
}

// getConfigValue gets value from environment first, then config, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" {
		return configValue
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
