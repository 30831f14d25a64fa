package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NSQ      NSQConfig
	Services ServicesConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NSQConfig contains NSQ connection and delivery configuration
type NSQConfig struct {
	NSQDAddress      string
	LookupdAddresses []string
	Topic            string
	DeadLetterTopic  string
	Channel          string
	MaxAttempts      int
	RequeueDelaySec  int
}

// ServicesConfig contains base URLs for external collaborators
type ServicesConfig struct {
	AuthorizerURL string
	NotifierURL   string
	ClientTimeout int // in seconds
	NotifyTimeout int // in seconds
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level string
}
