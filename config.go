package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDB           string
	MongoCollection   string
	ProjectionColl    string
	AuthIntrospectURL string
	BypassAuth        bool
	Port              string
	Environment       string
	LogLevel          string
	DashboardLimit    int
	ProjectionLimit   int
	CORSOrigins       []string
}

func mustConfig() Config {
	_ = godotenv.Load() // .env is optional

	cfg := Config{
		MongoURI:          getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getenv("MONGO_DB", "api6_mongo"),
		MongoCollection:   getenv("MONGO_COLLECTION", "yield_collection"),
		ProjectionColl:    getenv("MONGO_PROJECTION_COLLECTION", "yield_predict_collection"),
		AuthIntrospectURL: getenv("AUTH_INTROSPECT_URL", "http://localhost:3000/auth/validate"),
		BypassAuth:        getenv("API_BYPASS_AUTH", "false") == "true",
		Port:              getenv("PORT", "5000"),
		Environment:       getenv("ENVIRONMENT", "local"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		DashboardLimit:    getenvInt("DASHBOARD_DATA_LIMIT", 500),
		ProjectionLimit:   getenvInt("PROJECTION_DATA_LIMIT", 300),
		CORSOrigins:       splitList(getenv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	n, err := strconv.Atoi(getenv(k, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
