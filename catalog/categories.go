package catalog

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

type categoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// GetCategories returns all categories sorted by name.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.CategoriesCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("GetCategories Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve categories")
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		log.Println("GetCategories cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}

// GetCategory returns one category with a summary of its products.
func GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("categoryid")

	var category models.Category
	err := db.CategoriesCollection.FindOne(ctx, bson.M{"categoryid": categoryID}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Println("GetCategory FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve category")
		return
	}

	products, err := fetchAllProducts(ctx)
	if err != nil {
		log.Println("GetCategory fetch products error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}

	members := FilterSort(products, Criteria{CategoryID: categoryID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"id":          category.CategoryID,
		"name":        category.Name,
		"description": category.Description,
		"image":       category.Image,
		"products":    members,
	})
}

// CreateCategory inserts a new category.
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input categoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("CreateCategory decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Name == "" || input.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category name and description are required")
		return
	}

	category := models.Category{
		CategoryID:  "c" + utils.GenerateID(12),
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
	}
	if category.Image == "" {
		category.Image = "/static/categorypic/placeholder.jpg"
	}

	if _, err := db.CategoriesCollection.InsertOne(ctx, category); err != nil {
		log.Println("CreateCategory InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	invalidateProductCache(ctx)
	mq.Emit(ctx, "category", "created", category.CategoryID, utils.GetUserIDFromRequest(r))

	utils.RespondWithJSON(w, http.StatusCreated, category)
}

// UpdateCategory replaces a category's display fields.
func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("categoryid")

	var input categoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("UpdateCategory decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Name == "" || input.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category name and description are required")
		return
	}

	var existing models.Category
	err := db.CategoriesCollection.FindOne(ctx, bson.M{"categoryid": categoryID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Println("UpdateCategory FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve category")
		return
	}

	existing.Name = input.Name
	existing.Description = input.Description
	if input.Image != "" {
		existing.Image = input.Image
	}

	if _, err := db.CategoriesCollection.ReplaceOne(ctx, bson.M{"categoryid": categoryID}, existing); err != nil {
		log.Println("UpdateCategory ReplaceOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	invalidateProductCache(ctx)
	mq.Emit(ctx, "category", "updated", categoryID, utils.GetUserIDFromRequest(r))

	utils.RespondWithJSON(w, http.StatusOK, existing)
}

// canDeleteCategory is the referential-integrity guard: a category
// may only go away once nothing references it.
func canDeleteCategory(dependentProducts int64) bool {
	return dependentProducts == 0
}

// DeleteCategory removes a category. The delete is refused while any
// product still references the category.
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("categoryid")

	err := db.CategoriesCollection.FindOne(ctx, bson.M{"categoryid": categoryID}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Println("DeleteCategory FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve category")
		return
	}

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"categoryid": categoryID})
	if err != nil {
		log.Println("DeleteCategory CountDocuments error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not verify category products")
		return
	}
	if !canDeleteCategory(count) {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Category still has products. Delete them or move them to another category first.")
		return
	}

	if _, err := db.CategoriesCollection.DeleteOne(ctx, bson.M{"categoryid": categoryID}); err != nil {
		log.Println("DeleteCategory DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	invalidateProductCache(ctx)
	mq.Emit(ctx, "category", "deleted", categoryID, utils.GetUserIDFromRequest(r))

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
