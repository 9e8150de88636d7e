package seed

import (
	"context"
	"log"
	"time"

	"birdpacker/db"
	"birdpacker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"golang.org/x/crypto/bcrypt"
)

var seedCategories = []models.Category{
	{CategoryID: "category-1", Name: "Baju", Description: "Koleksi kaos dan pakaian dengan desain ilustrasi alam dan satwa", Image: "/static/productpic/category-1.png"},
	{CategoryID: "category-2", Name: "Poster", Description: "Poster ilustrasi ilmiah dan seni dengan tema alam dan satwa", Image: "/static/productpic/category-2.png"},
	{CategoryID: "category-3", Name: "Peta Offline", Description: "Peta fisik berbagai lokasi dan taman nasional di Indonesia", Image: "/static/productpic/category-3.png"},
	{CategoryID: "category-4", Name: "Ilustrasi", Description: "Karya ilustrasi alam, satwa, dan lingkungan", Image: "/static/productpic/category-4.png"},
	{CategoryID: "category-5", Name: "Buku", Description: "Buku panduan lapangan dan literatur tentang alam dan satwa", Image: "/static/productpic/category-5.png"},
}

func seedProducts() []models.Product {
	shirtFeatures := []string{
		"100% katun organik",
		"Desain eksklusif",
		"Tersedia ukuran S, M, L, XL, XXL",
		"Sablon berkualitas tinggi",
	}

	products := []models.Product{
		{
			ProductID: "product-1", Name: "Kaos Black Hole Birding",
			Description: "Kaos hitam dengan desain 'Black Hole Birding' untuk para pengamat burung dan pecinta alam.",
			Price:       149000, CategoryID: "category-1",
			Rating: 4.8, ReviewCount: 24, InStock: true, IsNew: true,
			Features: shirtFeatures,
			Specifications: map[string]string{
				"Brand": "NatureWear", "Material": "Katun organik", "Warna": "Hitam",
			},
			CreatedAt: time.Date(2023, 11, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ProductID: "product-2", Name: "Kaos I'm Not Creepy",
			Description: "Kaos putih dengan desain 'I'm Not Creepy, It's Just Not Too Early For Magic' untuk para pengamat burung.",
			Price:       149000, CategoryID: "category-1",
			Rating: 4.7, ReviewCount: 18, InStock: true, IsNew: true, Discount: 10,
			Features: shirtFeatures,
			Specifications: map[string]string{
				"Brand": "NatureWear", "Material": "Katun organik", "Warna": "Putih",
			},
			CreatedAt: time.Date(2023, 11, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			ProductID: "product-3", Name: "Poster Kupu-kupu Indonesia",
			Description: "Poster ilmiah bergaya vintage yang menampilkan berbagai spesies kupu-kupu yang ditemukan di Indonesia.",
			Price:       120000, CategoryID: "category-2",
			Rating: 4.9, ReviewCount: 32, InStock: true,
			Features: []string{
				"Ukuran A2 (42 x 59.4 cm)",
				"Dicetak pada kertas premium 200gsm",
				"Ilustrasi detail dengan label ilmiah",
			},
			Specifications: map[string]string{
				"Brand": "NatureArt", "Ukuran": "A2 (42 x 59.4 cm)", "Finishing": "Matte",
			},
			CreatedAt: time.Date(2023, 10, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			ProductID: "product-4", Name: "Peta Taman Nasional Gunung Gede Pangrango",
			Description: "Peta offline detail kawasan Taman Nasional Gunung Gede Pangrango dengan jalur pendakian dan titik pengamatan burung.",
			Price:       95000, CategoryID: "category-3",
			Rating: 4.6, ReviewCount: 11, InStock: true,
			Features: []string{
				"Skala 1:25.000",
				"Bahan tahan air",
				"Jalur pendakian lengkap",
			},
			Specifications: map[string]string{
				"Ukuran": "60 x 90 cm", "Material": "Kertas sintetis tahan air",
			},
			CreatedAt: time.Date(2023, 9, 5, 10, 0, 0, 0, time.UTC),
		},
	}

	for i := range products {
		products[i].Image = "/static/productpic/" + products[i].ProductID + ".jpg"
		products[i].EncodeFeatures()
	}
	return products
}

var seedContent = []models.Content{
	{
		ContentID: "about-1", Type: models.ContentAbout,
		Title: "Tentang Birdpacker Merch",
		Body:  "Birdpacker Merch adalah toko online yang menyediakan berbagai produk berkualitas untuk para pengamat burung dan pecinta alam. Kami berkomitmen untuk menyediakan produk yang ramah lingkungan dan mendukung konservasi alam.",
	},
	{
		ContentID: "faq-1", Type: models.ContentFAQ,
		Title: "Pertanyaan Umum",
		Body:  "1. Berapa lama waktu pengiriman?\nWaktu pengiriman tergantung pada lokasi Anda, biasanya 2-5 hari kerja.\n\n2. Apakah ada garansi produk?\nYa, semua produk kami memiliki garansi 30 hari.",
	},
}

var seedSettings = []models.Setting{
	{Key: "store_name", Value: "Birdpacker Merch"},
	{Key: "store_description", Value: "Toko online untuk para pengamat burung dan pecinta alam"},
	{Key: "currency", Value: "IDR"},
}

// Run upserts the default catalog, admin account, content pages and
// settings. Existing documents are left untouched.
func Run(ctx context.Context) error {
	upsert := options.Update().SetUpsert(true)

	for _, c := range seedCategories {
		filter := bson.M{"categoryid": c.CategoryID}
		update := bson.M{"$setOnInsert": c}
		if _, err := db.CategoriesCollection.UpdateOne(ctx, filter, update, upsert); err != nil {
			return err
		}
	}

	for _, p := range seedProducts() {
		filter := bson.M{"productid": p.ProductID}
		update := bson.M{"$setOnInsert": p}
		if _, err := db.ProductsCollection.UpdateOne(ctx, filter, update, upsert); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	admin := models.User{
		UserID:       "u-admin",
		Name:         "Admin",
		Email:        "admin@birdpacker.com",
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	adminUpdate := bson.M{"$setOnInsert": admin}
	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"email": admin.Email}, adminUpdate, upsert); err != nil {
		return err
	}

	for _, page := range seedContent {
		page.CreatedAt = now
		page.UpdatedAt = now
		filter := bson.M{"contentid": page.ContentID}
		update := bson.M{"$setOnInsert": page}
		if _, err := db.ContentCollection.UpdateOne(ctx, filter, update, upsert); err != nil {
			return err
		}
	}

	for _, s := range seedSettings {
		filter := bson.M{"key": s.Key}
		update := bson.M{"$setOnInsert": bson.M{"value": s.Value}}
		if _, err := db.SettingsCollection.UpdateOne(ctx, filter, update, upsert); err != nil {
			return err
		}
	}

	log.Println("seed: default store data ensured")
	return nil
}
