package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"1339"`

	MongoDBURL string `env:"MONGODB_URL"`
	URLPre     string `env:"URL_PRE"`
	MongoDBPwd string `env:"MONGODB_PWD"`
	URLPost    string `env:"URL_POST"`
	DBName     string `env:"DB_NAME" envDefault:"athletic_metrics_db"`
	DBReset    bool   `env:"DB_RESET" envDefault:"false"`

	FrontEnd []string `env:"FRONT_END" envSeparator:","`

	SessionTTLMinutes int  `env:"SESSION_TTL_MINUTES" envDefault:"15"`
	CookieSecure      bool `env:"COOKIE_SECURE" envDefault:"false"`

	BcryptConcurrency      int `env:"BCRYPT_CONCURRENCY" envDefault:"4"`
	LoginRateWindowSeconds int `env:"LOGIN_RATE_WINDOW_SECONDS" envDefault:"300"`
	LoginRateMax           int `env:"LOGIN_RATE_MAX" envDefault:"10"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"debug"`
	LogFile     string `env:"LOG_FILE" envDefault:"logs/server-log"`
	ConsoleOnly bool   `env:"CONSOLE_ONLY" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MongoURL devuelve la cadena de conexión. Si MONGODB_URL no está definida se
// arma a partir de URL_PRE + MONGODB_PWD + URL_POST.
func (c *Config) MongoURL() string {
	if url := strings.TrimSpace(c.MongoDBURL); url != "" {
		return url
	}
	return c.URLPre + c.MongoDBPwd + c.URLPost
}

// SessionTTL devuelve la duración de una sesión.
func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// LoginRateWindow devuelve la ventana del limitador de intentos de login.
func (c *Config) LoginRateWindow() time.Duration {
	if c.LoginRateWindowSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.LoginRateWindowSeconds) * time.Second
}
