package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	DB    DBConfig
	Redis RedisConfig
	Grid  GridConfig
}

type DBConfig struct {
	User     string
	Password string
	DBName   string
	SSLMode  string
	Host     string
	Port     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// GridConfig configures the geohash index. When Radius > 0 it drives the
// precision selection; otherwise Precision is used as given.
type GridConfig struct {
	Precision uint
	Radius    float64
	Verbose   bool
	Technique string
}

var Cfg *Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("grid.precision", 5)
	viper.SetDefault("grid.verbose", true)

	err := viper.ReadInConfig()
	if err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	err = viper.Unmarshal(&Cfg)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
