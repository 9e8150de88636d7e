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
)

// productInput is the create/update payload. Optional flags are
// pointers so an absent field can fall back to a default (create) or
// the stored value (update).
type productInput struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          int64             `json:"price"`
	Image          string            `json:"image"`
	CategoryID     string            `json:"categoryId"`
	InStock        *bool             `json:"inStock"`
	IsNew          *bool             `json:"isNew"`
	Discount       *int              `json:"discount"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
}

func (in *productInput) validate() string {
	switch {
	case in.Name == "":
		return "Product name is required"
	case in.Description == "":
		return "Product description is required"
	case in.Price <= 0:
		return "Product price must be positive"
	case in.CategoryID == "":
		return "Product category is required"
	}
	return ""
}

// fetchAllProducts reads the whole catalog, preferring the Redis
// cache. Features come back decoded.
func fetchAllProducts(ctx context.Context) ([]models.Product, error) {
	if products := cachedProducts(ctx); products != nil {
		return products, nil
	}

	cursor, err := db.ProductsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	for i := range products {
		products[i].DecodeFeatures()
	}

	cacheProducts(ctx, products)
	return products, nil
}

func categoryExists(ctx context.Context, categoryID string) (bool, error) {
	err := db.CategoriesCollection.FindOne(ctx, bson.M{"categoryid": categoryID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetProducts returns the catalog, narrowed and ordered by the query
// parameters (category, minPrice, maxPrice, search, sort).
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	products, err := fetchAllProducts(ctx)
	if err != nil {
		log.Println("GetProducts fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}

	criteria := ParseCriteria(r.URL.Query().Get)
	if criteria.SortKey == "" {
		criteria.SortKey = SortNewest
	}

	utils.RespondWithJSON(w, http.StatusOK, FilterSort(products, criteria))
}

// GetProduct returns one product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Println("GetProduct FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve product")
		return
	}

	product.DecodeFeatures()
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetFeaturedProducts returns new and discounted products for the
// storefront landing page.
func GetFeaturedProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	products, err := fetchAllProducts(ctx)
	if err != nil {
		log.Println("GetFeaturedProducts fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}

	featured := make([]models.Product, 0, 8)
	for _, p := range products {
		if !p.IsNew && p.Discount == 0 {
			continue
		}
		featured = append(featured, p)
		if len(featured) == 8 {
			break
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, featured)
}

// GetRelatedProducts returns up to four products sharing the given
// product's category.
func GetRelatedProducts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Println("GetRelatedProducts FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve product")
		return
	}

	products, err := fetchAllProducts(ctx)
	if err != nil {
		log.Println("GetRelatedProducts fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}

	related := make([]models.Product, 0, 4)
	for _, p := range products {
		if p.ProductID == productID || p.CategoryID != product.CategoryID {
			continue
		}
		related = append(related, p)
		if len(related) == 4 {
			break
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, related)
}

// CreateProduct inserts a new product. The referenced category must
// exist.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("CreateProduct decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	exists, err := categoryExists(ctx, input.CategoryID)
	if err != nil {
		log.Println("CreateProduct category check error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not verify category")
		return
	}
	if !exists {
		utils.RespondWithError(w, http.StatusBadRequest, "Referenced category does not exist")
		return
	}

	product := models.Product{
		ProductID:      "p" + utils.GenerateID(12),
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Image:          input.Image,
		CategoryID:     input.CategoryID,
		InStock:        true,
		Features:       input.Features,
		Specifications: input.Specifications,
		CreatedAt:      time.Now(),
	}
	if product.Image == "" {
		product.Image = "/static/productpic/placeholder.jpg"
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.IsNew != nil {
		product.IsNew = *input.IsNew
	}
	if input.Discount != nil {
		product.Discount = *input.Discount
	}
	product.EncodeFeatures()

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	invalidateProductCache(ctx)
	mq.Emit(ctx, "product", "created", product.ProductID, utils.GetUserIDFromRequest(r))

	product.DecodeFeatures()
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct replaces the provided fields of an existing product.
// Absent optional fields keep their stored values.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("UpdateProduct decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	var existing models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Println("UpdateProduct FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve product")
		return
	}

	exists, err := categoryExists(ctx, input.CategoryID)
	if err != nil {
		log.Println("UpdateProduct category check error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not verify category")
		return
	}
	if !exists {
		utils.RespondWithError(w, http.StatusBadRequest, "Referenced category does not exist")
		return
	}

	updated := existing
	updated.Name = input.Name
	updated.Description = input.Description
	updated.Price = input.Price
	updated.CategoryID = input.CategoryID
	if input.Image != "" {
		updated.Image = input.Image
	}
	if input.InStock != nil {
		updated.InStock = *input.InStock
	}
	if input.IsNew != nil {
		updated.IsNew = *input.IsNew
	}
	if input.Discount != nil {
		updated.Discount = *input.Discount
	}
	if input.Features != nil {
		updated.Features = input.Features
	} else {
		updated.DecodeFeatures()
	}
	if input.Specifications != nil {
		updated.Specifications = input.Specifications
	}
	updated.EncodeFeatures()

	if _, err := db.ProductsCollection.ReplaceOne(ctx, bson.M{"productid": productID}, updated); err != nil {
		log.Println("UpdateProduct ReplaceOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	invalidateProductCache(ctx)
	mq.Emit(ctx, "product", "updated", productID, utils.GetUserIDFromRequest(r))

	updated.DecodeFeatures()
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes a product by id.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": productID})
	if err != nil {
		log.Println("DeleteProduct DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	invalidateProductCache(ctx)
	mq.Emit(ctx, "product", "deleted", productID, utils.GetUserIDFromRequest(r))

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
