package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

func (cfg PostgresConfig) Validate() error {
	if cfg.Host == "" || cfg.User == "" || cfg.DBName == "" {
		return errors.New("POSTGRES_HOST, POSTGRES_USER and POSTGRES_DB_NAME must be set")
	}
	return nil
}

func (cfg PostgresConfig) connString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)
}

func NewConnection(cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.connString())
	if err != nil {
		return nil, errors.Wrap(err, "opening postgres")
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connecting to postgres at %s:%d", cfg.Host, cfg.Port)
	}

	return db, nil
}

func InitDB(db *sql.DB) error {
	query := `create table if not exists public.products
(
    id         text primary key,
    handle     text,
    title      text,
    fetched_at timestamptz not null
);`

	if _, err := db.Exec(query); err != nil {
		return errors.Wrap(err, "initializing db tables")
	}
	return nil
}
