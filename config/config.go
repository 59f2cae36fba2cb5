package config

import "os"

type Config struct {
	Port          string
	MongoURI      string
	DatabaseName  string
	RedisAddr     string
	AllowedOrigin string
}

func Load() Config {
	return Config{
		Port:          getenv("PORT", "8000"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:  getenv("DATABASE_NAME", "fooddelivery"),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "http://localhost:9000"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
