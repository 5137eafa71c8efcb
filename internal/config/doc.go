// Package config manages application configuration for the job board API.
//
// Configuration is read from environment variables. An optional dotenv file
// (CONFIG_FILE, default .env) is loaded first; variables already set in the
// process environment take precedence over the file.
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS, rate limit)
//   - DatabaseConfig: store driver (memory, surrealdb, mongo) and connections
//   - JWTConfig: token signing secret or RSA keys and lifetime
//   - StorageConfig: object storage for job attachments (s3, minio, none)
//   - MailConfig: SMTP settings for outgoing mail
//
// # Environment Variables
//
//	PORT                  - HTTP server port (default: 3000)
//	NODE_ENV              - development, production or test
//	DB_DRIVER             - memory, surrealdb or mongo (default: memory)
//	MONGO_URI             - MongoDB connection string
//	SURREAL_HOST          - SurrealDB host
//	JWT_SECRET            - HS256 signing secret
//	JWT_EXPIRES_TIME      - token lifetime as a Go duration (default: 168h)
//	STORAGE_DRIVER        - s3, minio or none
//	UPLOAD_MAX_BYTES      - attachment size limit
//	SMTP_ENABLED          - send mail through SMTP_HOST
package config
