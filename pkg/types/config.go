package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`

	// Store
	StoreDriver     StoreDriver `envconfig:"STORE_DRIVER" default:"sqlite3"`
	StorePath       string      `envconfig:"STORE_PATH" default:"food_waste.db"` // file path for sqlite3, DSN for pgx
	StoreTimeoutSec uint        `envconfig:"STORE_TIMEOUT_SEC" default:"5"`
	DataDir         string      `envconfig:"DATA_DIR" default:"data"`
	Seed            bool        `envconfig:"SEED" default:"true"`

	// Ad-hoc queries run read-only unless this is set
	AllowUnrestrictedQueries bool `envconfig:"ALLOW_UNRESTRICTED_QUERIES" default:"false"`

	// Flash cookie keys (base64 encoded), random per process when empty
	// openssl rand -base64 32
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Store file backups
	BackupBucket string `envconfig:"BACKUP_BUCKET"`
	BackupPrefix string `envconfig:"BACKUP_PREFIX" default:"backups"`
}

type StoreDriver string

const (
	StoreDriverSQLite   StoreDriver = "sqlite3"
	StoreDriverPostgres StoreDriver = "pgx"
)
