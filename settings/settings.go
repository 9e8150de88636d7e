package settings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"birdpacker/db"
	"birdpacker/models"
	"birdpacker/mq"
	"birdpacker/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSettings returns every store setting.
func GetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.SettingsCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Println("GetSettings Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve settings")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Setting
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetSettings cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading settings")
		return
	}
	if list == nil {
		list = []models.Setting{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// UpdateSettings upserts an array of key/value pairs by key.
func UpdateSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var list []models.Setting
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Expected an array of settings")
		return
	}

	for _, s := range list {
		if s.Key == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Setting key is required")
			return
		}
	}

	opts := options.Update().SetUpsert(true)
	for _, s := range list {
		filter := bson.M{"key": s.Key}
		update := bson.M{"$set": bson.M{"value": s.Value}}
		if _, err := db.SettingsCollection.UpdateOne(ctx, filter, update, opts); err != nil {
			log.Println("UpdateSettings UpdateOne error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update settings")
			return
		}
	}

	mq.Emit(ctx, "settings", "updated", "", utils.GetUserIDFromRequest(r))
	utils.RespondWithJSON(w, http.StatusOK, list)
}
