// Package config loads the runtime configuration from the environment and
// builds the shared infrastructure clients: the Postgres pool, the Redis
// client and the logger.
package config
