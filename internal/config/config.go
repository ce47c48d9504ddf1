package config

// Environment keys.
const (
	ENV_KEY_APP_ENV = "APP_ENV"
	ENV_KEY_PORT    = "PORT"

	// ENV_KEY_BASE_URL is the public base URL announced by the
	// catch-all route, e.g. "https://assets.example.com".
	ENV_KEY_BASE_URL = "BASE_URL"

	ENV_KEY_MONGO_URI      = "MONGO_URI"
	ENV_KEY_MONGO_DATABASE = "MONGO_DATABASE"

	// ENV_KEY_STORAGE_DRIVER selects the object storage backend,
	// either "s3" or "minio". Defaults to "s3".
	ENV_KEY_STORAGE_DRIVER = "STORAGE_DRIVER"

	ENV_KEY_AWS_REGION      = "AWS_REGION"
	ENV_KEY_AWS_BUCKET_NAME = "AWS_BUCKET_NAME"

	ENV_KEY_MINIO_ENDPOINT   = "MINIO_ENDPOINT"
	ENV_KEY_MINIO_ACCESS_KEY = "MINIO_ACCESS_KEY"
	ENV_KEY_MINIO_SECRET_KEY = "MINIO_SECRET_KEY"
	ENV_KEY_MINIO_USE_SSL    = "MINIO_USE_SSL"
)
