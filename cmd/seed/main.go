package main

import (
	"context"
	"log"
	"os"
	"time"

	"sfm-backend/internal/accounts"
	"sfm-backend/internal/auth"
	"sfm-backend/internal/config"
	"sfm-backend/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	email := envOrDefault("ADMIN_EMAIL", "")
	password := os.Getenv("ADMIN_PASSWORD")
	name := envOrDefault("ADMIN_NAME", "Admin")

	if email == "" || password == "" {
		log.Println("seed admin: ADMIN_EMAIL or ADMIN_PASSWORD missing, skipping")
	} else if err := seedAdminUser(ctx, cols, name, email, password, cfg.Timezone); err != nil {
		log.Fatalf("seed admin error for %s: %v", email, err)
	}

	log.Println("seed completed")
}

// seedAdminUser upserts by email so repeated runs reset the password
// instead of duplicating the account.
func seedAdminUser(ctx context.Context, cols *db.Collections, name, email, password string, loc *time.Location) error {
	if cols == nil || cols.Users == nil {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	filter := bson.M{"email": email}
	update := bson.M{
		"$set": bson.M{
			"name":         name,
			"passwordHash": hash,
			"role":         accounts.RoleAdmin,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"email":     email,
			"createdAt": now,
		},
	}
	_, err = cols.Users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
