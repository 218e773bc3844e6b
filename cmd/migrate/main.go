package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"bookshop-bot/internal/config"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const migrationSchema = `
CREATE TABLE IF NOT EXISTS users (
    user_id           BIGINT PRIMARY KEY,
    username          TEXT,
    first_name        TEXT,
    last_name         TEXT,
    phone             TEXT,
    group_name        TEXT,
    registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    total_orders      INTEGER NOT NULL DEFAULT 0,
    total_spent       NUMERIC(10, 2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS products (
    product_id TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    price      NUMERIC(10, 2) NOT NULL,
    emoji      TEXT,
    stock      INTEGER NOT NULL DEFAULT 0,
    total_sold INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS orders (
    order_id       BIGSERIAL PRIMARY KEY,
    user_id        BIGINT NOT NULL REFERENCES users (user_id),
    product_name   TEXT NOT NULL,
    quantity       INTEGER NOT NULL,
    total_price    NUMERIC(10, 2) NOT NULL,
    status         TEXT NOT NULL DEFAULT 'pending',
    payment_method TEXT,
    payment_proof  TEXT,
    order_date     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    admin_notes    TEXT
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders (order_date);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id);
`

func main() {
	configPath := flag.String("config", "./config/config.yaml", "path to the configuration file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to reach database: %v", err)
	}

	if _, err := db.Exec(migrationSchema); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	fmt.Println("schema applied")
}
