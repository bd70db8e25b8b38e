package config

import (
	"time"

	"github.com/joho/godotenv"
)

type MongoConfig struct {
	URI                    string
	Database               string
	ProductsCollection     string
	StocksCollection       string
	Timeout                time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type RabbitMQConfig struct {
	URL             string
	MaxRetries      int
	RetryDelay      time.Duration
	ExchangeConfigs []ExchangeConfig
	ImportQueue     QueueConfig
}

type ExchangeConfig struct {
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
	// Entity is the domain entity whose events are published here.
	Entity string
}

// QueueConfig describes the queue that receives bucket notifications for
// uploaded files.
type QueueConfig struct {
	Name       string
	Exchange   string
	RoutingKey string
	Prefetch   int
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type S3Config struct {
	Region          string
	Endpoint        string
	UsePathStyle    bool
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UploadPrefix    string
	URLExpiry       time.Duration
}

type HTTPConfig struct {
	Port          string
	BindInterface string
}

type IdempotencyConfig struct {
	TTL          time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type RateLimitConfig struct {
	CreateProduct int
	UploadURL     int
	Window        time.Duration
}

type SeedConfig struct {
	Enabled bool
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	IsProduction bool
	Format       string
}

type Config struct {
	Mongo       MongoConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	S3          S3Config
	HTTP        HTTPConfig
	Idempotency IdempotencyConfig
	RateLimit   RateLimitConfig
	Seed        SeedConfig
	Logger      LoggerConfig
}

func NewConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:               getStringEnv("MONGO_DATABASE", "product_service"),
			ProductsCollection:     getStringEnv("PRODUCTS_TABLE_NAME", "products"),
			StocksCollection:       getStringEnv("STOCK_TABLE_NAME", "stocks"),
			Timeout:                getDurationEnv("MONGO_TIMEOUT", 10*time.Second),
			MaxPoolSize:            uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:            uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 5)),
			ConnectTimeout:         getDurationEnv("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			ServerSelectionTimeout: getDurationEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:      getStringEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getStringEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getStringEnv("RABBITMQ_URL", "amqp://localhost:5672"),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: getDurationEnv("RABBITMQ_RETRY_DELAY", time.Second),
			ExchangeConfigs: []ExchangeConfig{
				{
					Name:       getStringEnv("RABBITMQ_PRODUCT_EXCHANGE", "exchange.product"),
					Type:       "topic",
					Durable:    true,
					AutoDelete: false,
					Entity:     "product",
				},
				{
					Name:       getStringEnv("RABBITMQ_IMPORT_EXCHANGE", "exchange.import"),
					Type:       "fanout",
					Durable:    true,
					AutoDelete: false,
				},
			},
			ImportQueue: QueueConfig{
				Name:       getStringEnv("RABBITMQ_IMPORT_QUEUE", "import.file-uploaded"),
				Exchange:   getStringEnv("RABBITMQ_IMPORT_EXCHANGE", "exchange.import"),
				RoutingKey: getStringEnv("RABBITMQ_IMPORT_ROUTING_KEY", ""),
				Prefetch:   getIntEnv("RABBITMQ_IMPORT_PREFETCH", 1),
			},
		},
		S3: S3Config{
			Region:          getStringEnv("AWS_REGION", "us-east-1"),
			Endpoint:        getStringEnv("S3_ENDPOINT", ""),
			UsePathStyle:    getBoolEnv("S3_USE_PATH_STYLE", false),
			AccessKeyID:     getStringEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getStringEnv("AWS_SECRET_ACCESS_KEY", ""),
			Bucket:          getStringEnv("BUCKET_NAME", "product-imports"),
			UploadPrefix:    getStringEnv("UPLOAD_PREFIX", "uploaded/"),
			URLExpiry:       getDurationEnv("UPLOAD_URL_EXPIRY", 60*time.Second),
		},
		HTTP: HTTPConfig{
			Port:          getStringEnv("HTTP_PORT", "8080"),
			BindInterface: getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
		},
		Idempotency: IdempotencyConfig{
			TTL:          getDurationEnv("IDEMPOTENCY_TTL", 15*time.Minute),
			PollInterval: getDurationEnv("IDEMPOTENCY_POLL_INTERVAL", time.Second),
			PollTimeout:  getDurationEnv("IDEMPOTENCY_POLL_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			CreateProduct: getIntEnv("RATE_LIMIT_CREATE_PRODUCT", 30),
			UploadURL:     getIntEnv("RATE_LIMIT_UPLOAD_URL", 10),
			Window:        getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		Seed: SeedConfig{
			Enabled: getBoolEnv("SEED_ENABLED", false),
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "product-service"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
			Format:       getStringEnv("LOG_FORMAT", "text"),
		},
	}
}
