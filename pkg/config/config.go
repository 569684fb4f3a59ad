package config

import "os"

type Config struct {
	Port            string
	Env             string
	AppSecret       string
	PostgresConnStr string
	MongoURI        string
	MongoDB         string
	StorageDriver   string
	UploadRoot      string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioUseSSL     bool
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		AppSecret:       getEnv("APP_SECRET", "development_app_secret"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDB:         getEnv("MONGO_DB", "postsapp"),
		StorageDriver:   getEnv("STORAGE_DRIVER", "disk"),
		UploadRoot:      getEnv("UPLOAD_ROOT", "./public"),
		MinioEndpoint:   getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:  getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:     getEnv("MINIO_BUCKET", "uploads"),
		MinioUseSSL:     getEnv("MINIO_USE_SSL", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
