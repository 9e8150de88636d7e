package checkout

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"birdpacker/db"
	"birdpacker/models"
	"birdpacker/mq"
	"birdpacker/rdx"
	"birdpacker/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const sessionTTL = 30 * time.Minute

// Session is the in-progress checkout for one user, persisted in
// Redis between steps. Raw card fields are never stored; only the
// last four digits survive into the session.
type Session struct {
	SessionID       string                 `json:"sessionId"`
	UserID          string                 `json:"userId"`
	Step            Step                   `json:"step"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	ShippingMethod  string                 `json:"shippingMethod"`
	PaymentMethod   string                 `json:"paymentMethod"`
	LastFourDigits  string                 `json:"lastFourDigits,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

func sessionKey(userID string) string {
	return "checkout:" + userID
}

// loadSession returns redis.Nil when no checkout is in progress;
// any other error is a backend failure.
func loadSession(userID string) (*Session, error) {
	raw, err := rdx.RdxGet(sessionKey(userID))
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func saveSession(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return rdx.RdxSetTTL(sessionKey(sess.UserID), string(data), sessionTTL)
}

func dropSession(userID string) {
	if err := rdx.RdxDel(sessionKey(userID)); err != nil {
		log.Println("checkout session delete error:", err)
	}
}

// respondSessionError maps a loadSession failure onto the API error
// taxonomy: missing session is 404, anything else is a backend 500.
func respondSessionError(w http.ResponseWriter, handler string, err error) {
	if err == redis.Nil {
		utils.RespondWithError(w, http.StatusNotFound, "No checkout in progress")
		return
	}
	log.Println(handler+" session load error:", err)
	utils.RespondWithError(w, http.StatusInternalServerError, "Could not load checkout")
}

func cartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// cardLastFour keeps only the trailing digits of a card number. A
// number shorter than four characters is rejected.
func cardLastFour(number string) (string, bool) {
	if len(number) < 4 {
		return "", false
	}
	return number[len(number)-4:], true
}

// buildOrder snapshots a reviewed session and its cart lines into an
// order. Total is always subtotal + shipping + tax.
func buildOrder(sess *Session, items []models.CartItem) models.Order {
	totals := ComputeTotals(models.CartTotal(items), sess.ShippingMethod)

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	return models.Order{
		OrderID:         utils.GetUUID(),
		OrderNumber:     "ORD-" + utils.GenerateRandomDigitString(8),
		UserID:          sess.UserID,
		Status:          models.OrderProcessing,
		Items:           orderItems,
		ShippingAddress: sess.ShippingAddress,
		ShippingMethod:  sess.ShippingMethod,
		PaymentMethod:   sess.PaymentMethod,
		LastFourDigits:  sess.LastFourDigits,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
		CreatedAt:       time.Now(),
	}
}

// StartCheckout opens a session at the shipping step. An empty cart
// refuses checkout outright.
func StartCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := cartItems(ctx, userID)
	if err != nil {
		log.Println("StartCheckout cart fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	if len(items) == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Cart is empty")
		return
	}

	sess := &Session{
		SessionID:      utils.GetUUID(),
		UserID:         userID,
		Step:           StepShipping,
		ShippingMethod: ShippingStandard,
		CreatedAt:      time.Now(),
	}
	if err := saveSession(sess); err != nil {
		log.Println("StartCheckout save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not start checkout")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, sess)
}

// GetCheckout returns the session plus the cart lines and computed
// totals for the review summary.
func GetCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess, err := loadSession(userID)
	if err != nil {
		respondSessionError(w, "GetCheckout", err)
		return
	}

	items, err := cartItems(ctx, userID)
	if err != nil {
		log.Println("GetCheckout cart fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"session": sess,
		"items":   items,
		"totals":  ComputeTotals(models.CartTotal(items), sess.ShippingMethod),
	})
}

// SubmitShipping records the address and shipping method, advancing
// from shipping to payment.
func SubmitShipping(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess, err := loadSession(userID)
	if err != nil {
		respondSessionError(w, "SubmitShipping", err)
		return
	}
	if sess.Step != StepShipping {
		utils.RespondWithError(w, http.StatusConflict, "Checkout is past the shipping step")
		return
	}

	var input struct {
		Address models.ShippingAddress `json:"address"`
		Method  string                 `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	a := input.Address
	if a.Name == "" || a.Street == "" || a.City == "" || a.ZipCode == "" || a.Country == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Shipping address is incomplete")
		return
	}
	if !ValidShippingMethod(input.Method) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown shipping method")
		return
	}

	sess.ShippingAddress = input.Address
	sess.ShippingMethod = input.Method
	sess.Step, _ = NextStep(sess.Step)

	if err := saveSession(sess); err != nil {
		log.Println("SubmitShipping save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save checkout")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// SubmitPayment records the payment selection, advancing from payment
// to review. Card fields are checked for presence and length only;
// nothing beyond the last four digits is kept.
func SubmitPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess, err := loadSession(userID)
	if err != nil {
		respondSessionError(w, "SubmitPayment", err)
		return
	}
	if sess.Step != StepPayment {
		utils.RespondWithError(w, http.StatusConflict, "Checkout is not at the payment step")
		return
	}

	var input struct {
		Method     string `json:"method"`
		CardNumber string `json:"cardNumber"`
		CardName   string `json:"cardName"`
		Expiry     string `json:"expiry"`
		CVC        string `json:"cvc"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !ValidPaymentMethod(input.Method) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}
	if input.Method == PaymentCreditCard {
		if input.CardNumber == "" || input.CardName == "" || input.Expiry == "" || input.CVC == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Card details are incomplete")
			return
		}
		lastFour, ok := cardLastFour(input.CardNumber)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Card number is too short")
			return
		}
		sess.LastFourDigits = lastFour
	} else {
		sess.LastFourDigits = ""
	}

	sess.PaymentMethod = input.Method
	sess.Step, _ = NextStep(sess.Step)

	if err := saveSession(sess); err != nil {
		log.Println("SubmitPayment save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save checkout")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// StepBack moves the session one step backwards where the machine
// allows it.
func StepBack(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess, err := loadSession(userID)
	if err != nil {
		respondSessionError(w, "StepBack", err)
		return
	}

	prev, ok := PrevStep(sess.Step)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot step back from here")
		return
	}
	sess.Step = prev

	if err := saveSession(sess); err != nil {
		log.Println("StepBack save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save checkout")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// PlaceOrder converts the reviewed session into an order, clears the
// cart and closes the session. When the order insert fails, the cart
// and session are kept so the user can retry.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess, err := loadSession(userID)
	if err != nil {
		respondSessionError(w, "PlaceOrder", err)
		return
	}
	if sess.Step != StepReview {
		utils.RespondWithError(w, http.StatusConflict, "Checkout has not reached review")
		return
	}

	items, err := cartItems(ctx, userID)
	if err != nil {
		log.Println("PlaceOrder cart fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	if len(items) == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Cart is empty")
		return
	}

	order := buildOrder(sess, items)

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		// cart and session stay intact for a retry
		log.Println("PlaceOrder InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Println("PlaceOrder cart cleanup error:", err)
	}
	dropSession(userID)

	mq.Emit(ctx, "order", "placed", order.OrderID, userID)
	utils.RespondWithJSON(w, http.StatusCreated, order)
}
