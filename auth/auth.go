package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"birdpacker/db"
	"birdpacker/globals"
	"birdpacker/middleware"
	"birdpacker/models"
	"birdpacker/rdx"
	"birdpacker/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL = 72 * time.Hour
	tokenHash      = "tokki" // redis hash of active tokens by user id
)

func generateAccessToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Name:   user.Name,
		UserID: user.UserID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// Login issues a token for the identity behind the given email. With
// the default mock verifier any non-empty credentials succeed; a
// first login provisions the user record.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := Active.VerifyLogin(ctx, input.Email, input.Password); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	user, err := findOrProvisionUser(ctx, input.Email)
	if err != nil {
		log.Println("Login user lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	tokenString, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.RdxHset(tokenHash, user.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token": tokenString,
		"user":  user,
	})
}

// Register creates a user and issues a token.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := Active.VerifyRegistration(ctx, input.Name, input.Email, input.Password); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			utils.RespondWithError(w, http.StatusConflict, "Email already registered")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Hash error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:       "u" + utils.GenerateID(10),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Upsert by email so repeated registrations stay idempotent under
	// the mock trust model.
	filter := bson.M{"email": user.Email}
	update := bson.M{"$setOnInsert": user}
	opts := options.Update().SetUpsert(true)
	if _, err := db.UserCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("Register UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	var stored models.User
	if err := db.UserCollection.FindOne(ctx, filter).Decode(&stored); err == nil {
		user = stored
	}

	tokenString, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.RdxHset(tokenHash, user.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"token": tokenString,
		"user":  user,
	})
}

// Logout removes the caller's active token.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := rdx.RdxHdel(tokenHash, userID); err != nil {
		log.Printf("Redis token remove failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func findOrProvisionUser(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		return user, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	now := time.Now()
	user = models.User{
		UserID:    "u" + utils.GenerateID(10),
		Name:      name,
		Email:     email,
		Role:      "user",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
