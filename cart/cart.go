package cart

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

// clampQuantity keeps cart quantities at a minimum of 1.
func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// fetchItems loads the user's cart items.
func fetchItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// AddToCart increments quantity if the product is already present,
// or inserts a new item with the captured display fields.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Println("AddToCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	item.Quantity = clampQuantity(item.Quantity)
	if item.ProductID == "" || item.Name == "" || item.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid cart item fields")
		return
	}
	item.UserID = userID

	// Upsert: increment quantity when the product is already in the cart
	filter := bson.M{"userId": userID, "productId": item.ProductID}
	update := bson.M{
		"$inc": bson.M{"quantity": item.Quantity},
		"$setOnInsert": bson.M{
			"name":    item.Name,
			"price":   item.Price,
			"image":   item.Image,
			"addedAt": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := db.CartCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("AddToCart UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	mq.Emit(ctx, "cart", "added", item.ProductID, userID)
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// GetCart returns the user's items with the total recomputed from
// them.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := fetchItems(ctx, userID)
	if err != nil {
		log.Println("GetCart fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items": items,
		"total": models.CartTotal(items),
	})
}

// UpdateQuantity sets an item's quantity, clamped to a minimum of 1.
// A missing item is a no-op.
func UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateQuantity decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	payload.Quantity = clampQuantity(payload.Quantity)

	productID := ps.ByName("productid")
	filter := bson.M{"userId": userID, "productId": productID}
	update := bson.M{"$set": bson.M{"quantity": payload.Quantity}}

	if _, err := db.CartCollection.UpdateOne(ctx, filter, update); err != nil {
		log.Println("UpdateQuantity UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	mq.Emit(ctx, "cart", "updated", productID, userID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveFromCart deletes one item from the user's cart.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID := ps.ByName("productid")
	if _, err := db.CartCollection.DeleteOne(ctx, bson.M{"userId": userID, "productId": productID}); err != nil {
		log.Println("RemoveFromCart DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}

	mq.Emit(ctx, "cart", "removed", productID, userID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ClearCart removes every item for the user.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Println("ClearCart DeleteMany error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	mq.Emit(ctx, "cart", "cleared", "", userID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
