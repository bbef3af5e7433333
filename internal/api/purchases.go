package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"emabill/m/domain"
)

// Purchase handlers. Purchases are the stock source for sales: every line
// item gets its own stable id and a sales_quantity counter that sale
// creation decrements.

type purchaseItemRequest struct {
	ProductName   string  `json:"productName"`
	HSNCode       string  `json:"hsnCode"`
	GST           float64 `json:"gst"`
	SellingPrice  float64 `json:"sellingPrice"`
	SalesQuantity *int64  `json:"salesQuantity"`
}

type purchaseRequest struct {
	SupplierName      string                `json:"supplierName"`
	DespatchedThrough string                `json:"despatchedThrough"`
	Items             []purchaseItemRequest `json:"items"`
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "No purchase items provided")
		return
	}
	for _, item := range req.Items {
		if item.ProductName == "" {
			respondError(w, http.StatusBadRequest, "productName is required for each purchase item")
			return
		}
		if item.SellingPrice <= 0 {
			respondError(w, http.StatusBadRequest, "sellingPrice must be greater than zero")
			return
		}
		if item.SalesQuantity != nil && *item.SalesQuantity < 0 {
			respondError(w, http.StatusBadRequest, "salesQuantity cannot be negative")
			return
		}
	}

	tx, err := h.db.Beginx()
	if err != nil {
		h.serverError(w, "unable to start purchase", err)
		return
	}
	defer tx.Rollback()

	purchaseID := uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO purchases (id, supplier_name, despatched_through) VALUES (?, ?, ?)`,
		purchaseID, req.SupplierName, req.DespatchedThrough); err != nil {
		h.serverError(w, "unable to create purchase", err)
		return
	}

	items := make([]domain.PurchaseItem, 0, len(req.Items))
	for _, item := range req.Items {
		pi := domain.PurchaseItem{
			ID:            uuid.NewString(),
			PurchaseID:    purchaseID,
			ProductName:   item.ProductName,
			HSNCode:       item.HSNCode,
			GST:           item.GST,
			SellingPrice:  item.SellingPrice,
			SalesQuantity: item.SalesQuantity,
		}
		if _, err := tx.Exec(`INSERT INTO purchase_items (id, purchase_id, product_name, hsn_code, gst, selling_price, sales_quantity)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			pi.ID, pi.PurchaseID, pi.ProductName, pi.HSNCode, pi.GST, pi.SellingPrice, pi.SalesQuantity); err != nil {
			h.serverError(w, "unable to add purchase items", err)
			return
		}
		items = append(items, pi)
	}

	var createdAt string
	if err := tx.Get(&createdAt, `SELECT created_at FROM purchases WHERE id = ?`, purchaseID); err != nil {
		h.serverError(w, "unable to load purchase", err)
		return
	}

	if err := tx.Commit(); err != nil {
		h.serverError(w, "unable to finalize purchase", err)
		return
	}

	respondJSON(w, http.StatusCreated, domain.Purchase{
		ID:                purchaseID,
		SupplierName:      req.SupplierName,
		DespatchedThrough: req.DespatchedThrough,
		CreatedAt:         createdAt,
		Items:             items,
	})
}

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	var purchases []domain.Purchase
	if err := h.db.Select(&purchases, `SELECT id, supplier_name, despatched_through, created_at FROM purchases ORDER BY created_at DESC, rowid DESC`); err != nil {
		h.serverError(w, "unable to list purchases", err)
		return
	}
	if len(purchases) == 0 {
		respondJSON(w, http.StatusOK, []domain.Purchase{})
		return
	}

	ids := make([]string, len(purchases))
	for i, p := range purchases {
		ids[i] = p.ID
	}
	itemsQuery, itemsArgs, err := sqlx.In(`SELECT id, purchase_id, product_name, hsn_code, gst, selling_price, sales_quantity
		FROM purchase_items WHERE purchase_id IN (?) ORDER BY rowid`, ids)
	if err != nil {
		h.serverError(w, "unable to prepare purchase items query", err)
		return
	}
	var items []domain.PurchaseItem
	if err := h.db.Select(&items, itemsQuery, itemsArgs...); err != nil {
		h.serverError(w, "unable to load purchase items", err)
		return
	}
	itemsByPurchase := make(map[string][]domain.PurchaseItem)
	for _, item := range items {
		itemsByPurchase[item.PurchaseID] = append(itemsByPurchase[item.PurchaseID], item)
	}
	for i := range purchases {
		purchases[i].Items = itemsByPurchase[purchases[i].ID]
		if purchases[i].Items == nil {
			purchases[i].Items = []domain.PurchaseItem{}
		}
	}

	respondJSON(w, http.StatusOK, purchases)
}

func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var purchase domain.Purchase
	err := h.db.Get(&purchase, `SELECT id, supplier_name, despatched_through, created_at FROM purchases WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Purchase not found")
			return
		}
		h.serverError(w, "unable to load purchase", err)
		return
	}
	if err := h.db.Select(&purchase.Items, `SELECT id, purchase_id, product_name, hsn_code, gst, selling_price, sales_quantity
		FROM purchase_items WHERE purchase_id = ? ORDER BY rowid`, id); err != nil {
		h.serverError(w, "unable to load purchase items", err)
		return
	}
	if purchase.Items == nil {
		purchase.Items = []domain.PurchaseItem{}
	}
	respondJSON(w, http.StatusOK, purchase)
}
