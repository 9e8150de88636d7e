package routes

import (
	"net/http"

	"birdpacker/auth"
	"birdpacker/cart"
	"birdpacker/catalog"
	"birdpacker/checkout"
	"birdpacker/content"
	"birdpacker/live"
	"birdpacker/middleware"
	"birdpacker/orders"
	"birdpacker/profile"
	"birdpacker/ratelim"
	"birdpacker/settings"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", middleware.OptionalAuth(catalog.GetProducts))
	router.GET("/api/products/featured", catalog.GetFeaturedProducts)
	router.GET("/api/product/:productid", middleware.OptionalAuth(catalog.GetProduct))
	router.GET("/api/product/:productid/related", catalog.GetRelatedProducts)
	router.POST("/api/products", middleware.Authenticate(middleware.AdminOnly(catalog.CreateProduct)))
	router.PUT("/api/product/:productid", middleware.Authenticate(middleware.AdminOnly(catalog.UpdateProduct)))
	router.DELETE("/api/product/:productid", middleware.Authenticate(middleware.AdminOnly(catalog.DeleteProduct)))
	router.POST("/api/product/:productid/image", middleware.Authenticate(middleware.AdminOnly(catalog.UploadProductImage)))
}

func AddCategoryRoutes(router *httprouter.Router) {
	router.GET("/api/categories", catalog.GetCategories)
	router.GET("/api/categories/:categoryid", catalog.GetCategory)
	router.POST("/api/categories", middleware.Authenticate(middleware.AdminOnly(catalog.CreateCategory)))
	router.PUT("/api/categories/:categoryid", middleware.Authenticate(middleware.AdminOnly(catalog.UpdateCategory)))
	router.DELETE("/api/categories/:categoryid", middleware.Authenticate(middleware.AdminOnly(catalog.DeleteCategory)))
}

func AddContentRoutes(router *httprouter.Router) {
	router.GET("/api/content", content.GetContents)
	router.GET("/api/content/:contentid", content.GetContent)
	router.POST("/api/content", middleware.Authenticate(middleware.AdminOnly(content.CreateContent)))
	router.PUT("/api/content/:contentid", middleware.Authenticate(middleware.AdminOnly(content.UpdateContent)))
	router.DELETE("/api/content/:contentid", middleware.Authenticate(middleware.AdminOnly(content.DeleteContent)))
}

func AddSettingsRoutes(router *httprouter.Router) {
	router.GET("/api/settings", settings.GetSettings)
	router.PUT("/api/settings", middleware.Authenticate(middleware.AdminOnly(settings.UpdateSettings)))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", ratelim.RateLimit(middleware.Authenticate(cart.AddToCart)))
	router.PUT("/api/cart/:productid", middleware.Authenticate(cart.UpdateQuantity))
	router.DELETE("/api/cart/:productid", middleware.Authenticate(cart.RemoveFromCart))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddCheckoutRoutes(router *httprouter.Router) {
	router.POST("/api/checkout/start", ratelim.RateLimit(middleware.Authenticate(checkout.StartCheckout)))
	router.GET("/api/checkout", middleware.Authenticate(checkout.GetCheckout))
	router.POST("/api/checkout/shipping", middleware.Authenticate(checkout.SubmitShipping))
	router.POST("/api/checkout/payment", middleware.Authenticate(checkout.SubmitPayment))
	router.POST("/api/checkout/back", middleware.Authenticate(checkout.StepBack))
	router.POST("/api/checkout/place-order", ratelim.RateLimit(middleware.Authenticate(checkout.PlaceOrder)))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/orders", middleware.Authenticate(orders.GetOrders))
	router.GET("/api/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/:orderid/invoice", ratelim.RateLimit(middleware.Authenticate(orders.PrintInvoice)))
	router.PUT("/api/orders/:orderid/status", middleware.Authenticate(middleware.AdminOnly(orders.UpdateOrderStatus)))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.EditProfile))
}

// AddLiveRoutes exposes the admin event stream.
func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/admin/events", live.WebSocketHandler(hub))
}
