package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// implements server/Service persistence via usecase.Repository
type service struct {
	client *mongo.Client
	db     *mongo.Database
}

var (
	uri      = os.Getenv("MONGO_URI")
	database = os.Getenv("MONGO_DATABASE")
)

func New() *service {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		log.Fatal(err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("db down: %v", err)
	}
	log.Printf("Connected to database: %s", database)

	return &service{
		client: client,
		db:     client.Database(database),
	}
}

// Health checks the database connection by pinging the server.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

// Close disconnects from the database. In-flight operations get the
// caller's context deadline to finish.
func (s *service) Close(ctx context.Context) error {
	log.Printf("Disconnected from database: %s", database)
	return s.client.Disconnect(ctx)
}
