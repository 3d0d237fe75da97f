package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Env-driven wiring for one floor terminal process. Fatal is acceptable here:
// a terminal that cannot reach the shared data service has nothing to show.

func MustInitPostgres() *sql.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to open data service connection:", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatal("Failed to reach data service:", err)
	}

	// One terminal serves a handful of operators; keep the pool small.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

// NewKafkaReader starts at the newest offset: a terminal re-derives current
// state from the data service on every refresh, so replaying old change
// notifications would only produce redundant refreshes.
func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{os.Getenv("KAFKA_BROKER")},
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafka.LastOffset,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

// BranchID is the terminal's scope; empty selects all branches.
func BranchID() string {
	return os.Getenv("BRANCH_ID")
}

// ListenAddr is the terminal API bind address.
func ListenAddr() string {
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		return addr
	}
	return ":8085"
}

// ReceiptBaseURL is the public base encoded into receipt QR links.
func ReceiptBaseURL() string {
	if base := os.Getenv("RECEIPT_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:8085"
}
