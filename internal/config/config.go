package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Prompt defaults for the credential form.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 5432
	DefaultUsername = "postgres"
	DefaultSchema   = "public"
	DefaultPageSize = 10
)

// Config represents the application configuration.
type Config struct {
	Connection  Connection  `mapstructure:"connection"`
	Preferences Preferences `mapstructure:"preferences"`
}

// Connection holds the parameters of one database session.
type Connection struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// Preferences holds user preferences.
type Preferences struct {
	Theme        string        `mapstructure:"theme"`
	Schema       string        `mapstructure:"schema"`
	PageSize     int           `mapstructure:"page_size"`
	UseKeyring   bool          `mapstructure:"use_keyring"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	LogLevel     string        `mapstructure:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Connection: Connection{
			Host:     DefaultHost,
			Port:     DefaultPort,
			Username: DefaultUsername,
		},
		Preferences: Preferences{
			Theme:    "default",
			Schema:   DefaultSchema,
			PageSize: DefaultPageSize,
			LogLevel: "info",
		},
	}
}

// ParsePort coerces a port prompt answer to an integer. Empty means the default.
func ParsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid port %d: out of range", port)
	}
	return port, nil
}

// DSN builds a PostgreSQL connection URL from the connection parameters.
func (c Connection) DSN() string {
	u := url.URL{
		Scheme: "postgresql",
		Host:   c.Host,
		Path:   "/" + c.Database,
	}
	if c.Port > 0 {
		u.Host += ":" + strconv.Itoa(c.Port)
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.Username, c.Password)
		} else {
			u.User = url.User(c.Username)
		}
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// DisplayString returns a human-readable summary of the connection.
func (c Connection) DisplayString() string {
	s := c.Host
	if c.Port > 0 {
		s += ":" + strconv.Itoa(c.Port)
	}
	s += "/" + c.Database
	if c.Username != "" {
		s = c.Username + "@" + s
	}
	return s
}

// KeyringAccount is the account name the password is stored under.
func (c Connection) KeyringAccount() string {
	return c.DisplayString()
}

// ParseDSN parses a PostgreSQL connection string into a Connection.
func ParseDSN(dsn string) (Connection, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return Connection{}, &ErrInvalidDSN{Cause: err}
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return Connection{}, &ErrInvalidDSN{Cause: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}

	conn := Connection{
		Host:     u.Hostname(),
		Database: strings.TrimPrefix(u.Path, "/"),
		SSLMode:  u.Query().Get("sslmode"),
	}

	if u.User != nil {
		conn.Username = u.User.Username()
		if p, ok := u.User.Password(); ok {
			conn.Password = p
		}
	}

	if portStr := u.Port(); portStr != "" {
		conn.Port, err = ParsePort(portStr)
		if err != nil {
			return Connection{}, &ErrInvalidDSN{Cause: err}
		}
	}
	if conn.Port == 0 {
		conn.Port = DefaultPort
	}

	return conn, nil
}

// ErrInvalidDSN is returned when a connection string cannot be parsed.
type ErrInvalidDSN struct {
	Cause error
}

func (e *ErrInvalidDSN) Error() string {
	return fmt.Sprintf("invalid DSN: %v", e.Cause)
}

func (e *ErrInvalidDSN) Unwrap() error {
	return e.Cause
}
