package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ProductsCollection   *mongo.Collection
	CategoriesCollection *mongo.Collection
	ContentCollection    *mongo.Collection
	SettingsCollection   *mongo.Collection
	UserCollection       *mongo.Collection
	CartCollection       *mongo.Collection
	OrdersCollection     *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("storedb")
	ProductsCollection = database.Collection("products")
	CategoriesCollection = database.Collection("categories")
	ContentCollection = database.Collection("content")
	SettingsCollection = database.Collection("settings")
	UserCollection = database.Collection("users")
	CartCollection = database.Collection("carts")
	OrdersCollection = database.Collection("orders")
}
