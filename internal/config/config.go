package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Storage     Storage `envPrefix:"STORAGE_"`
	Session     Session `envPrefix:"SESSION_"`

	// Seed loads the demo catalog and admin account on startup.
	Seed bool `env:"SEED_DATA" envDefault:"true"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Storage struct {
	// Driver selects the storage backend: memory, sqlite or mysql.
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DSN" envDefault:"bookhaven.db"`
}

type Session struct {
	TTL         time.Duration `env:"TTL" envDefault:"24h"`
	RememberTTL time.Duration `env:"REMEMBER_TTL" envDefault:"720h"`
	CookieName  string        `env:"COOKIE_NAME" envDefault:"bookhaven_session"`
}
