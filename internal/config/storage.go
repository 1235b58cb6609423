package config

type Storage struct {
	Database Database `envPrefix:"DATABASE_"`
}

// Database points at the sqlite file backing the task store. An empty
// DSN selects the in-memory adapter.
type Database struct {
	DSN string `env:"DSN" envDefault:"data.sqlite"`
}
