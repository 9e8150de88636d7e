package catalog

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"birdpacker/db"
	"birdpacker/mq"
	"birdpacker/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "static/productpic"

// UploadProductImage accepts a multipart image, stores the original
// plus a 300px thumbnail, and points the product at the new file.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Err()
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		log.Println("UploadProductImage decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not decode image")
		return
	}

	uniqueID := utils.GenerateID(16)
	fileName := uniqueID + ".jpg"
	originalPath := filepath.Join(productPicDir, fileName)
	thumbDir := filepath.Join(productPicDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := utils.EnsureDir(productPicDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create thumbnail directory")
		return
	}

	if err := imaging.Save(img, originalPath); err != nil {
		log.Println("UploadProductImage save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		log.Println("UploadProductImage thumbnail error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	imagePath := "/static/productpic/" + fileName
	update := bson.M{"$set": bson.M{"image": imagePath}}
	if _, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productid": productID}, update); err != nil {
		log.Println("UploadProductImage UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product image")
		return
	}

	invalidateProductCache(ctx)
	mq.Emit(ctx, "product", "updated", productID, utils.GetUserIDFromRequest(r))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"image":     imagePath,
		"thumbnail": fmt.Sprintf("/static/productpic/thumb/%s", fileName),
	})
}
