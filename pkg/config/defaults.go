package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "doctorsPortal"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultMongoReadTimeout  = 5 * time.Second
	DefaultMongoWriteTimeout = 5 * time.Second

	DefaultPort = "8080"

	DefaultJWTTTL = 1 * time.Hour

	DefaultStripeBaseURL   = "https://api.stripe.com"
	DefaultPaymentCurrency = "usd"

	DefaultKafkaEventsTopic = "portal.events"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLogLevel = "info"
)
