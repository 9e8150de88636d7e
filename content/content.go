package content

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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contentInput struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"content"`
}

func (in *contentInput) validate() string {
	switch {
	case in.Title == "":
		return "Content title is required"
	case in.Body == "":
		return "Content body is required"
	case !models.ValidContentType(in.Type):
		return "Unknown content type"
	}
	return ""
}

// GetContents lists pages, optionally narrowed by ?type=, most
// recently updated first.
func GetContents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if t := r.URL.Query().Get("type"); t != "" {
		filter["type"] = t
	}

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := db.ContentCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetContents Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve content")
		return
	}
	defer cursor.Close(ctx)

	var pages []models.Content
	if err := cursor.All(ctx, &pages); err != nil {
		log.Println("GetContents cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading content")
		return
	}
	if pages == nil {
		pages = []models.Content{}
	}

	utils.RespondWithJSON(w, http.StatusOK, pages)
}

func GetContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var page models.Content
	err := db.ContentCollection.FindOne(ctx, bson.M{"contentid": ps.ByName("contentid")}).Decode(&page)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Content not found")
		return
	}
	if err != nil {
		log.Println("GetContent FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve content")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, page)
}

func CreateContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input contentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	page := models.Content{
		ContentID: "ct" + utils.GenerateID(12),
		Type:      input.Type,
		Title:     input.Title,
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.ContentCollection.InsertOne(ctx, page); err != nil {
		log.Println("CreateContent InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create content")
		return
	}

	mq.Emit(ctx, "content", "created", page.ContentID, utils.GetUserIDFromRequest(r))
	utils.RespondWithJSON(w, http.StatusCreated, page)
}

func UpdateContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	contentID := ps.ByName("contentid")

	var input contentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	var existing models.Content
	err := db.ContentCollection.FindOne(ctx, bson.M{"contentid": contentID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Content not found")
		return
	}
	if err != nil {
		log.Println("UpdateContent FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve content")
		return
	}

	existing.Type = input.Type
	existing.Title = input.Title
	existing.Body = input.Body
	existing.UpdatedAt = time.Now()

	if _, err := db.ContentCollection.ReplaceOne(ctx, bson.M{"contentid": contentID}, existing); err != nil {
		log.Println("UpdateContent ReplaceOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update content")
		return
	}

	mq.Emit(ctx, "content", "updated", contentID, utils.GetUserIDFromRequest(r))
	utils.RespondWithJSON(w, http.StatusOK, existing)
}

func DeleteContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	contentID := ps.ByName("contentid")

	res, err := db.ContentCollection.DeleteOne(ctx, bson.M{"contentid": contentID})
	if err != nil {
		log.Println("DeleteContent DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete content")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Content not found")
		return
	}

	mq.Emit(ctx, "content", "deleted", contentID, utils.GetUserIDFromRequest(r))
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Content deleted"})
}
