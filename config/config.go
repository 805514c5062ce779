package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Allocation AllocationConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AllocationConfig holds the bed-allocation engine settings: the search radius
// bounds offered to patients, the fallback radii tried when the initial search
// comes up empty, and the defaults substituted by the reconciliation pass for
// hospitals with missing location or capacity data.
type AllocationConfig struct {
	MinRadiusKm      float64
	MaxRadiusKm      float64
	FallbackRadiiKm  []float64
	DefaultLatitude  float64
	DefaultLongitude float64
	DefaultTotalBeds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Allocation: DefaultAllocationConfig(),
	}

	if v := viper.GetFloat64("ALLOCATION_DEFAULT_LATITUDE"); v != 0 {
		config.Allocation.DefaultLatitude = v
	}
	if v := viper.GetFloat64("ALLOCATION_DEFAULT_LONGITUDE"); v != 0 {
		config.Allocation.DefaultLongitude = v
	}
	if v := viper.GetInt("ALLOCATION_DEFAULT_TOTAL_BEDS"); v > 0 {
		config.Allocation.DefaultTotalBeds = v
	}

	return config, nil
}

// DefaultAllocationConfig returns the allocation settings used when none are
// configured. The default coordinate is central Bangalore, matching the seeded
// hospital locations.
func DefaultAllocationConfig() AllocationConfig {
	return AllocationConfig{
		MinRadiusKm:      5,
		MaxRadiusKm:      50,
		FallbackRadiiKm:  []float64{20, 30, 50},
		DefaultLatitude:  12.9716,
		DefaultLongitude: 77.5946,
		DefaultTotalBeds: 100,
	}
}
