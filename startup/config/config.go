package config

import "os"

type Config struct {
	Port                 string
	ProfileDBHost        string
	ProfileDBPort        string
	PropertyDBHost       string
	PropertyDBPort       string
	TokenCacheHost       string
	TokenCachePort       string
	RecommendationDBHost string
	RecommendationDBPort string
	RecommendationDBUser string
	RecommendationDBPass string
	JaegerAddress        string
}

func NewConfig() *Config {
	return &Config{
		Port:                 os.Getenv("BNOY_SERVICE_PORT"),
		ProfileDBHost:        os.Getenv("PROFILE_DB_HOST"),
		ProfileDBPort:        os.Getenv("PROFILE_DB_PORT"),
		PropertyDBHost:       os.Getenv("PROPERTY_DB_HOST"),
		PropertyDBPort:       os.Getenv("PROPERTY_DB_PORT"),
		TokenCacheHost:       os.Getenv("TOKEN_CACHE_HOST"),
		TokenCachePort:       os.Getenv("TOKEN_CACHE_PORT"),
		RecommendationDBHost: os.Getenv("RECOMMENDATION_DB_HOST"),
		RecommendationDBPort: os.Getenv("RECOMMENDATION_DB_PORT"),
		RecommendationDBUser: os.Getenv("RECOMMENDATION_DB_USER"),
		RecommendationDBPass: os.Getenv("RECOMMENDATION_DB_PASS"),
		JaegerAddress:        os.Getenv("JAEGER_ADDRESS"),
	}
}
