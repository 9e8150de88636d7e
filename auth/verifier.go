package auth

import (
	"context"
	"errors"

	"birdpacker/db"
	"birdpacker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// Verifier decides whether credentials are acceptable. The identity
// backend is a stand-in collaborator, so the trust model is
// pluggable: the default MockVerifier trusts any non-empty
// credentials, while StoreVerifier checks stored bcrypt hashes.
type Verifier interface {
	VerifyLogin(ctx context.Context, email, password string) error
	VerifyRegistration(ctx context.Context, name, email, password string) error
}

// Active is the verifier used by the HTTP handlers.
var Active Verifier = MockVerifier{}

// MockVerifier accepts any non-empty credentials.
type MockVerifier struct{}

func (MockVerifier) VerifyLogin(_ context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

func (MockVerifier) VerifyRegistration(_ context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// StoreVerifier validates against user records in MongoDB.
type StoreVerifier struct{}

func (StoreVerifier) VerifyLogin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrInvalidCredentials
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (StoreVerifier) VerifyRegistration(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return ErrInvalidCredentials
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return ErrEmailTaken
	}
	if err != mongo.ErrNoDocuments {
		return err
	}
	return nil
}
