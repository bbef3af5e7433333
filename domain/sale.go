package domain

// SellerDetails and BuyerDetails are snapshots captured on the sale at
// creation time; they are never resolved back to live records.
type SellerDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type BuyerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	State   string `json:"state"`
}

// SaleItemPurchase carries the expanded fields of the source purchase
// line when a sale is read back.
type SaleItemPurchase struct {
	ID                string  `json:"id"`
	ProductName       string  `json:"productName,omitempty"`
	HSNCode           string  `json:"hsnCode,omitempty"`
	SellingPrice      float64 `json:"sellingPrice,omitempty"`
	GST               float64 `json:"gst,omitempty"`
	DespatchedThrough string  `json:"despatchedThrough,omitempty"`
}

type SaleItem struct {
	ProductName        string            `json:"productName"`
	HSNCode            string            `json:"hsnCode"`
	Quantity           int64             `json:"quantity"`
	PurchaseID         string            `json:"purchaseId"`
	PurchaseItemID     string            `json:"purchaseItemId,omitempty"`
	Rate               float64           `json:"rate"`
	DiscountPercentage float64           `json:"discountPercentage"`
	Amount             float64           `json:"amount"`
	Purchase           *SaleItemPurchase `json:"purchase,omitempty"`
}

// Sale is one invoice. Amount fields are fixed at creation; the update
// endpoint overwrites whatever it is given without recomputation.
type Sale struct {
	ID                string        `json:"id"`
	UserID            *int64        `json:"userId,omitempty"`
	User              *User         `json:"user,omitempty"`
	InvoiceNumber     string        `json:"invoiceNumber"`
	InvoiceDate       string        `json:"invoiceDate"`
	BillingDate       string        `json:"billingDate"`
	DueDate           string        `json:"dueDate"`
	ModeOfPayment     string        `json:"modeOfPayment"`
	OtherRef          string        `json:"otherRef"`
	GRNoDate          string        `json:"GRNoDate"`
	DeliveryNote      string        `json:"deliveryNote"`
	SupplierRef       string        `json:"supplierRef"`
	BuyerOrderNo      string        `json:"buyerOrderNo"`
	DeliveryNoteDate  string        `json:"deliveryNoteDate"`
	DespatchedThrough string        `json:"despatchedThrough"`
	Destination       string        `json:"destination"`
	TermsOfDelivery   string        `json:"termsOfDelivery"`
	SellerDetails     SellerDetails `json:"sellerDetails"`
	BuyerDetails      BuyerDetails  `json:"buyerDetails"`
	Items             []SaleItem    `json:"items"`
	SubTotal          float64       `json:"subTotal"`
	RoundOff          float64       `json:"roundOff"`
	GrandTotal        float64       `json:"grandTotal"`
	CreatedAt         string        `json:"createdAt"`
	UpdatedAt         string        `json:"updatedAt"`
}
