package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"birdpacker/db"
	"birdpacker/models"
	"birdpacker/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func invoiceSecret() []byte {
	if s := os.Getenv("INVOICE_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev_only_invoice_key")
}

// invoiceQRPayload signs the order reference so a scanned invoice can
// be verified: orderID|orderNumber|timestamp|signature.
func invoiceQRPayload(orderID, orderNumber string) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, orderNumber, time.Now().Unix())

	h := hmac.New(sha256.New, invoiceSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintInvoice renders an order as a PDF invoice with a signed QR
// reference.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderid")}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("PrintInvoice FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}
	if order.UserID != userID && utils.GetRoleFromRequest(r) != "admin" {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	qrPNG, err := qrcode.Encode(invoiceQRPayload(order.OrderID, order.OrderNumber), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Order: %s\nDate: %s\nStatus: %s",
		order.OrderNumber,
		order.CreatedAt.Format("02 Jan 2006 15:04"),
		order.Status,
	), "", "L", false)
	pdf.Ln(4)

	addr := order.ShippingAddress
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Ship to", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("%s\n%s\n%s, %s %s\n%s",
		addr.Name, addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country),
		"", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(90, 8, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", item.Price*int64(item.Quantity)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(115, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%d", order.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(115, 7, "Shipping", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%d", order.Shipping), "", 1, "R", false, 0, "")
	pdf.CellFormat(115, 7, "Tax", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%d", order.Tax), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(115, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%d", order.Total), "T", 1, "R", false, 0, "")

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imgOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
