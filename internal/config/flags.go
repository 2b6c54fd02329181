package config

import (
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
)

// Flags holds all command line flag values
type Flags struct {
	// General
	configFile *string
	version    *bool

	// Server
	serverPort *int
	serverHost *string

	// Database
	dbType             *string
	dbSQLitePath       *string
	dbPostgresHost     *string
	dbPostgresPort     *int
	dbPostgresDatabase *string
	dbPostgresUser     *string
	dbPostgresPassword *string

	// JWT
	jwtSecret     *string
	jwtExpiration *string
	jwtIssuer     *string

	// Ledger
	ledgerProducerMinBalance *int64
	ledgerPricePerCredit     *int64
	ledgerCertifierName      *string

	// Logging
	logLevel  *string
	logFormat *string

	// Security
	securityCORSEnabled *bool
	securityCORSOrigins *[]string
}

// ParseFlags defines and parses all command line flags. It returns the flag
// set, the config file path, and whether the version flag was given.
func ParseFlags() (*Flags, string, bool) {
	f := &Flags{}

	// General flags
	f.configFile = flag.StringP("config", "c", "config.yaml", "Path to configuration file")
	f.version = flag.BoolP("version", "v", false, "Print version and exit")

	// Server flags
	f.serverPort = flag.Int("server.port", 0, "HTTP server port")
	f.serverHost = flag.String("server.host", "", "HTTP server bind address")

	// Database flags
	f.dbType = flag.String("db.type", "", "Database type (sqlite, postgres, or memory)")
	f.dbSQLitePath = flag.String("db.sqlite.path", "", "SQLite database file path")
	f.dbPostgresHost = flag.String("db.postgres.host", "", "PostgreSQL host")
	f.dbPostgresPort = flag.Int("db.postgres.port", 0, "PostgreSQL port")
	f.dbPostgresDatabase = flag.String("db.postgres.database", "", "PostgreSQL database name")
	f.dbPostgresUser = flag.String("db.postgres.user", "", "PostgreSQL user")
	f.dbPostgresPassword = flag.String("db.postgres.password", "", "PostgreSQL password")

	// JWT flags
	f.jwtSecret = flag.String("jwt.secret", "", "JWT secret key")
	f.jwtExpiration = flag.String("jwt.expiration", "", "JWT expiration duration (e.g., 24h)")
	f.jwtIssuer = flag.String("jwt.issuer", "", "JWT issuer")

	// Ledger flags
	f.ledgerProducerMinBalance = flag.Int64("ledger.producer-min-balance", -1, "Minimum balance (GHC) required to become a producer")
	f.ledgerPricePerCredit = flag.Int64("ledger.price-per-credit", -1, "Display price annotated on transfers, per GHC")
	f.ledgerCertifierName = flag.String("ledger.certifier-name", "", "Certifier name recorded on issued certificates")

	// Logging flags
	f.logLevel = flag.StringP("log.level", "l", "", "Log level (debug, info, warn, error)")
	f.logFormat = flag.String("log.format", "", "Log format (json or console)")

	// Security flags
	f.securityCORSEnabled = flag.Bool("security.cors-enabled", false, "Enable CORS")
	f.securityCORSOrigins = flag.StringSlice("security.cors-origins", nil, "CORS allowed origins (can be specified multiple times)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	return f, *f.configFile, *f.version
}

// Apply overrides cfg with any flags that were explicitly set on the
// command line.
func (f *Flags) Apply(cfg *Config) {
	if changed("server.port") {
		cfg.Server.Port = *f.serverPort
	}
	if changed("server.host") {
		cfg.Server.Host = *f.serverHost
	}

	if changed("db.type") {
		cfg.Database.Type = *f.dbType
	}
	if changed("db.sqlite.path") {
		cfg.Database.SQLite.Path = *f.dbSQLitePath
	}
	if changed("db.postgres.host") {
		cfg.Database.Postgres.Host = *f.dbPostgresHost
	}
	if changed("db.postgres.port") {
		cfg.Database.Postgres.Port = *f.dbPostgresPort
	}
	if changed("db.postgres.database") {
		cfg.Database.Postgres.Database = *f.dbPostgresDatabase
	}
	if changed("db.postgres.user") {
		cfg.Database.Postgres.User = *f.dbPostgresUser
	}
	if changed("db.postgres.password") {
		cfg.Database.Postgres.Password = *f.dbPostgresPassword
	}

	if changed("jwt.secret") {
		cfg.JWT.Secret = *f.jwtSecret
	}
	if changed("jwt.expiration") {
		if d, err := time.ParseDuration(*f.jwtExpiration); err == nil {
			cfg.JWT.Expiration = d
		}
	}
	if changed("jwt.issuer") {
		cfg.JWT.Issuer = *f.jwtIssuer
	}

	if changed("ledger.producer-min-balance") {
		cfg.Ledger.ProducerMinBalance = *f.ledgerProducerMinBalance
	}
	if changed("ledger.price-per-credit") {
		cfg.Ledger.PricePerCredit = *f.ledgerPricePerCredit
	}
	if changed("ledger.certifier-name") {
		cfg.Ledger.CertifierName = *f.ledgerCertifierName
	}

	if changed("log.level") {
		cfg.Logging.Level = *f.logLevel
	}
	if changed("log.format") {
		cfg.Logging.Format = *f.logFormat
	}

	if changed("security.cors-enabled") {
		cfg.Security.CORSEnabled = *f.securityCORSEnabled
	}
	if changed("security.cors-origins") {
		cfg.Security.CORSOrigins = *f.securityCORSOrigins
	}
}

// changed reports whether a flag was explicitly set on the command line.
func changed(name string) bool {
	lookup := flag.Lookup(name)
	return lookup != nil && lookup.Changed
}
