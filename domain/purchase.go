package domain

// PurchaseItem is one product line of a purchase. SalesQuantity is the
// remaining sellable stock counter; nil means it was never initialized.
type PurchaseItem struct {
	ID            string  `db:"id" json:"id"`
	PurchaseID    string  `db:"purchase_id" json:"purchaseId"`
	ProductName   string  `db:"product_name" json:"productName"`
	HSNCode       string  `db:"hsn_code" json:"hsnCode"`
	GST           float64 `db:"gst" json:"gst"`
	SellingPrice  float64 `db:"selling_price" json:"sellingPrice"`
	SalesQuantity *int64  `db:"sales_quantity" json:"salesQuantity,omitempty"`
}

type Purchase struct {
	ID                string         `db:"id" json:"id"`
	SupplierName      string         `db:"supplier_name" json:"supplierName"`
	DespatchedThrough string         `db:"despatched_through" json:"despatchedThrough"`
	CreatedAt         string         `db:"created_at" json:"created_at"`
	Items             []PurchaseItem `json:"items"`
}
