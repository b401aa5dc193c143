package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	API      APIConfig
	JWT      JWTConfig
	Cache    CacheConfig
	Currency CurrencyConfig
	Session  SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Business string // nombre impreso en las fichas de costo
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP (BFF).
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig cliente de la API remota del ERP.
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration // espera inicial; se duplica en cada reintento
}

// JWTConfig verificación de tokens. Si Secret está vacío solo se decodifican los claims
// y se valida la expiración (la firma la verifica la API remota).
type JWTConfig struct {
	Secret string
}

// CacheConfig almacén de caché de colecciones remotas.
type CacheConfig struct {
	TTL      time.Duration
	RedisURL string // vacío = caché en memoria
}

// CurrencyConfig monedas del negocio.
type CurrencyConfig struct {
	Primary   string
	Secondary string
}

// SessionConfig almacenamiento del token para la CLI.
type SessionConfig struct {
	File string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, REDIS_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "panaderia-erp"),
			Business: getString(v, "BUSINESS_NAME", "Panadería"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		API: APIConfig{
			BaseURL:    strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:3000/api"), "/"),
			Timeout:    time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
			MaxRetries: getInt(v, "API_MAX_RETRIES", 2),
			Backoff:    time.Duration(getInt(v, "API_BACKOFF_MS", 300)) * time.Millisecond,
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
		},
		Cache: CacheConfig{
			TTL:      time.Duration(getInt(v, "CACHE_TTL_SECONDS", 300)) * time.Second,
			RedisURL: getString(v, "REDIS_URL", ""),
		},
		Currency: CurrencyConfig{
			Primary:   strings.ToUpper(getString(v, "CURRENCY_PRIMARY", "NIO")),
			Secondary: strings.ToUpper(getString(v, "CURRENCY_SECONDARY", "USD")),
		},
		Session: SessionConfig{
			File: getString(v, "SESSION_FILE", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL requerido")
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("config: API_MAX_RETRIES no puede ser negativo")
	}
	if c.Currency.Primary == c.Currency.Secondary {
		return fmt.Errorf("config: CURRENCY_PRIMARY y CURRENCY_SECONDARY deben ser distintas")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
