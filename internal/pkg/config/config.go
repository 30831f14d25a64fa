package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"

	"minibank/internal/pkg/models"
)

// InitConfig loads configuration from an optional env file and the
// environment. Environment variables always win over file values.
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	v.SetConfigType("env")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	setDefaults(v)
	return loadConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "minibank")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "")

	v.SetDefault("SERVER_PORT", 9990)
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USERNAME", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_DATABASE", "minibank")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("NSQ_NSQD_ADDRESS", "localhost:4150")
	v.SetDefault("NSQ_LOOKUPD_ADDRESSES", "")
	v.SetDefault("NSQ_TOPIC", "transaction.created")
	v.SetDefault("NSQ_DEAD_LETTER_TOPIC", "transaction.created.deadletter")
	v.SetDefault("NSQ_CHANNEL", "transaction-worker")
	v.SetDefault("NSQ_MAX_ATTEMPTS", 5)
	v.SetDefault("NSQ_REQUEUE_DELAY_SEC", 5)

	v.SetDefault("AUTHORIZER_URL", "http://localhost:8085")
	v.SetDefault("NOTIFIER_URL", "http://localhost:8086")
	v.SetDefault("SERVICES_CLIENT_TIMEOUT", 10)
	v.SetDefault("SERVICES_NOTIFY_TIMEOUT", 5)

	v.SetDefault("LOG_LEVEL", "info")
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	configs.NSQ.NSQDAddress = v.GetString("NSQ_NSQD_ADDRESS")
	if addrs := v.GetString("NSQ_LOOKUPD_ADDRESSES"); addrs != "" {
		configs.NSQ.LookupdAddresses = strings.Split(addrs, ",")
	}
	configs.NSQ.Topic = v.GetString("NSQ_TOPIC")
	configs.NSQ.DeadLetterTopic = v.GetString("NSQ_DEAD_LETTER_TOPIC")
	configs.NSQ.Channel = v.GetString("NSQ_CHANNEL")
	configs.NSQ.MaxAttempts = v.GetInt("NSQ_MAX_ATTEMPTS")
	configs.NSQ.RequeueDelaySec = v.GetInt("NSQ_REQUEUE_DELAY_SEC")

	configs.Services.AuthorizerURL = v.GetString("AUTHORIZER_URL")
	configs.Services.NotifierURL = v.GetString("NOTIFIER_URL")
	configs.Services.ClientTimeout = v.GetInt("SERVICES_CLIENT_TIMEOUT")
	configs.Services.NotifyTimeout = v.GetInt("SERVICES_NOTIFY_TIMEOUT")

	configs.Logger.Level = v.GetString("LOG_LEVEL")

	return configs
}
