package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"emabill/m/domain"
	"emabill/m/internal/invoice"
)

// Sales handlers. Creation is the one non-trivial workflow: it resolves
// every requested line against purchase stock, decrements the counters and
// writes the invoice, all inside a single transaction so a failing line
// leaves no partial decrement behind and invoice sequences cannot collide.

const saleColumns = `id, user_id, invoice_number,
	COALESCE(invoice_date, '') AS invoice_date,
	COALESCE(billing_date, '') AS billing_date,
	COALESCE(due_date, '') AS due_date,
	mode_of_payment,
	COALESCE(other_ref, '') AS other_ref,
	COALESCE(gr_no_date, '') AS gr_no_date,
	COALESCE(delivery_note, '') AS delivery_note,
	COALESCE(supplier_ref, '') AS supplier_ref,
	COALESCE(buyer_order_no, '') AS buyer_order_no,
	COALESCE(delivery_note_date, '') AS delivery_note_date,
	COALESCE(despatched_through, '') AS despatched_through,
	COALESCE(destination, '') AS destination,
	COALESCE(terms_of_delivery, '') AS terms_of_delivery,
	COALESCE(seller_name, '') AS seller_name,
	COALESCE(seller_address, '') AS seller_address,
	COALESCE(buyer_name, '') AS buyer_name,
	COALESCE(buyer_email, '') AS buyer_email,
	COALESCE(buyer_phone, '') AS buyer_phone,
	COALESCE(buyer_address, '') AS buyer_address,
	COALESCE(buyer_state, '') AS buyer_state,
	sub_total, round_off, grand_total, created_at, updated_at`

type saleRow struct {
	ID                string  `db:"id"`
	UserID            *int64  `db:"user_id"`
	InvoiceNumber     string  `db:"invoice_number"`
	InvoiceDate       string  `db:"invoice_date"`
	BillingDate       string  `db:"billing_date"`
	DueDate           string  `db:"due_date"`
	ModeOfPayment     string  `db:"mode_of_payment"`
	OtherRef          string  `db:"other_ref"`
	GRNoDate          string  `db:"gr_no_date"`
	DeliveryNote      string  `db:"delivery_note"`
	SupplierRef       string  `db:"supplier_ref"`
	BuyerOrderNo      string  `db:"buyer_order_no"`
	DeliveryNoteDate  string  `db:"delivery_note_date"`
	DespatchedThrough string  `db:"despatched_through"`
	Destination       string  `db:"destination"`
	TermsOfDelivery   string  `db:"terms_of_delivery"`
	SellerName        string  `db:"seller_name"`
	SellerAddress     string  `db:"seller_address"`
	BuyerName         string  `db:"buyer_name"`
	BuyerEmail        string  `db:"buyer_email"`
	BuyerPhone        string  `db:"buyer_phone"`
	BuyerAddress      string  `db:"buyer_address"`
	BuyerState        string  `db:"buyer_state"`
	SubTotal          float64 `db:"sub_total"`
	RoundOff          float64 `db:"round_off"`
	GrandTotal        float64 `db:"grand_total"`
	CreatedAt         string  `db:"created_at"`
	UpdatedAt         string  `db:"updated_at"`
}

func (row saleRow) toDomain() domain.Sale {
	return domain.Sale{
		ID:                row.ID,
		UserID:            row.UserID,
		InvoiceNumber:     row.InvoiceNumber,
		InvoiceDate:       row.InvoiceDate,
		BillingDate:       row.BillingDate,
		DueDate:           row.DueDate,
		ModeOfPayment:     row.ModeOfPayment,
		OtherRef:          row.OtherRef,
		GRNoDate:          row.GRNoDate,
		DeliveryNote:      row.DeliveryNote,
		SupplierRef:       row.SupplierRef,
		BuyerOrderNo:      row.BuyerOrderNo,
		DeliveryNoteDate:  row.DeliveryNoteDate,
		DespatchedThrough: row.DespatchedThrough,
		Destination:       row.Destination,
		TermsOfDelivery:   row.TermsOfDelivery,
		SellerDetails:     domain.SellerDetails{Name: row.SellerName, Address: row.SellerAddress},
		BuyerDetails: domain.BuyerDetails{
			Name:    row.BuyerName,
			Email:   row.BuyerEmail,
			Phone:   row.BuyerPhone,
			Address: row.BuyerAddress,
			State:   row.BuyerState,
		},
		SubTotal:   row.SubTotal,
		RoundOff:   row.RoundOff,
		GrandTotal: row.GrandTotal,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type saleItemRow struct {
	SaleID               string  `db:"sale_id"`
	PurchaseID           string  `db:"purchase_id"`
	PurchaseItemID       string  `db:"purchase_item_id"`
	ProductName          string  `db:"product_name"`
	HSNCode              string  `db:"hsn_code"`
	Quantity             int64   `db:"quantity"`
	Rate                 float64 `db:"rate"`
	DiscountPercentage   float64 `db:"discount_percentage"`
	Amount               float64 `db:"amount"`
	SrcProductName       string  `db:"src_product_name"`
	SrcHSNCode           string  `db:"src_hsn_code"`
	SrcSellingPrice      float64 `db:"src_selling_price"`
	SrcGST               float64 `db:"src_gst"`
	SrcDespatchedThrough string  `db:"src_despatched_through"`
}

const saleItemQuery = `SELECT si.sale_id,
	COALESCE(si.purchase_id, '') AS purchase_id,
	COALESCE(si.purchase_item_id, '') AS purchase_item_id,
	si.product_name,
	COALESCE(si.hsn_code, '') AS hsn_code,
	si.quantity, si.rate, si.discount_percentage, si.amount,
	COALESCE(pi.product_name, '') AS src_product_name,
	COALESCE(pi.hsn_code, '') AS src_hsn_code,
	COALESCE(pi.selling_price, 0) AS src_selling_price,
	COALESCE(pi.gst, 0) AS src_gst,
	COALESCE(p.despatched_through, '') AS src_despatched_through
	FROM sale_items si
	LEFT JOIN purchase_items pi ON pi.id = si.purchase_item_id
	LEFT JOIN purchases p ON p.id = si.purchase_id
	WHERE si.sale_id IN (?)
	ORDER BY si.id`

// Sale creation

type saleItemRequest struct {
	ProductName        string  `json:"productName"`
	Quantity           int64   `json:"quantity"`
	PurchaseID         string  `json:"purchaseId"`
	PurchaseItemID     string  `json:"purchaseItemId"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

type saleRequest struct {
	UserID            *int64               `json:"userId"`
	InvoiceDate       string               `json:"invoiceDate"`
	BillingDate       string               `json:"billingDate"`
	DueDate           string               `json:"dueDate"`
	ModeOfPayment     string               `json:"modeOfPayment"`
	OtherRef          string               `json:"otherRef"`
	GRNoDate          string               `json:"GRNoDate"`
	DeliveryNote      string               `json:"deliveryNote"`
	SupplierRef       string               `json:"supplierRef"`
	BuyerOrderNo      string               `json:"buyerOrderNo"`
	DeliveryNoteDate  string               `json:"deliveryNoteDate"`
	DespatchedThrough string               `json:"despatchedThrough"`
	Destination       string               `json:"destination"`
	TermsOfDelivery   string               `json:"termsOfDelivery"`
	SellerDetails     domain.SellerDetails `json:"sellerDetails"`
	BuyerDetails      domain.BuyerDetails  `json:"buyerDetails"`
	RoundOff          float64              `json:"roundOff"`
	Items             []saleItemRequest    `json:"items"`
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ModeOfPayment == "" {
		respondError(w, http.StatusBadRequest, "modeOfPayment is required")
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "No sales items provided")
		return
	}
	if req.ModeOfPayment != "Cash" && req.ModeOfPayment != "Credit" {
		respondError(w, http.StatusBadRequest, "Invalid modeOfPayment value")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		h.serverError(w, "unable to start sale", err)
		return
	}
	defer tx.Rollback()

	invoiceNumber, err := invoice.Next(tx, time.Now())
	if err != nil {
		h.serverError(w, "unable to generate invoice number", err)
		return
	}

	items := make([]domain.SaleItem, 0, len(req.Items))
	subTotal := decimal.Zero

	for _, salesItem := range req.Items {
		if salesItem.PurchaseID == "" {
			respondError(w, http.StatusBadRequest, "purchaseId is required for each sales item")
			return
		}

		var purchaseExists bool
		if err := tx.Get(&purchaseExists, `SELECT EXISTS(SELECT 1 FROM purchases WHERE id = ?)`, salesItem.PurchaseID); err != nil {
			h.serverError(w, "unable to load purchase", err)
			return
		}
		if !purchaseExists {
			respondError(w, http.StatusNotFound, fmt.Sprintf("Purchase with ID '%s' not found", salesItem.PurchaseID))
			return
		}

		var purchaseItems []domain.PurchaseItem
		if err := tx.Select(&purchaseItems, `SELECT id, purchase_id, product_name, COALESCE(hsn_code, '') AS hsn_code, COALESCE(gst, 0) AS gst, selling_price, sales_quantity
			FROM purchase_items WHERE purchase_id = ?`, salesItem.PurchaseID); err != nil {
			h.serverError(w, "unable to load purchase items", err)
			return
		}

		matched := matchPurchaseItem(purchaseItems, salesItem.PurchaseItemID, salesItem.ProductName)
		if matched == nil {
			respondError(w, http.StatusNotFound, fmt.Sprintf("Product '%s' not found in Purchase items", salesItem.ProductName))
			return
		}

		qty := salesItem.Quantity
		if matched.SalesQuantity == nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("salesQuantity not initialized for product '%s'", salesItem.ProductName))
			return
		}
		if *matched.SalesQuantity < qty {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Insufficient stock for product '%s'", salesItem.ProductName))
			return
		}

		lineAmount := invoice.LineAmount(qty, matched.SellingPrice, salesItem.DiscountPercentage)

		if _, err := tx.Exec(`UPDATE purchase_items SET sales_quantity = sales_quantity - ? WHERE id = ?`, qty, matched.ID); err != nil {
			h.serverError(w, "unable to update stock", err)
			return
		}

		items = append(items, domain.SaleItem{
			ProductName:        salesItem.ProductName,
			HSNCode:            matched.HSNCode,
			Quantity:           qty,
			PurchaseID:         salesItem.PurchaseID,
			PurchaseItemID:     matched.ID,
			Rate:               matched.SellingPrice,
			DiscountPercentage: salesItem.DiscountPercentage,
			Amount:             invoice.Round2(lineAmount),
		})
		subTotal = subTotal.Add(lineAmount)
	}

	saleID := uuid.NewString()
	_, err = tx.Exec(`INSERT INTO sales (id, user_id, invoice_number, invoice_date, billing_date, due_date, mode_of_payment,
		other_ref, gr_no_date, delivery_note, supplier_ref, buyer_order_no, delivery_note_date, despatched_through,
		destination, terms_of_delivery, seller_name, seller_address, buyer_name, buyer_email, buyer_phone, buyer_address,
		buyer_state, sub_total, round_off, grand_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		saleID, req.UserID, invoiceNumber, req.InvoiceDate, req.BillingDate, req.DueDate, req.ModeOfPayment,
		req.OtherRef, req.GRNoDate, req.DeliveryNote, req.SupplierRef, req.BuyerOrderNo, req.DeliveryNoteDate,
		req.DespatchedThrough, req.Destination, req.TermsOfDelivery, req.SellerDetails.Name, req.SellerDetails.Address,
		req.BuyerDetails.Name, req.BuyerDetails.Email, req.BuyerDetails.Phone, req.BuyerDetails.Address,
		req.BuyerDetails.State, invoice.Round2(subTotal), req.RoundOff, invoice.GrandTotal(subTotal, req.RoundOff))
	if err != nil {
		h.serverError(w, "unable to create sale record", err)
		return
	}

	for _, item := range items {
		if _, err := tx.Exec(`INSERT INTO sale_items (sale_id, purchase_id, purchase_item_id, product_name, hsn_code, quantity, rate, discount_percentage, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			saleID, item.PurchaseID, item.PurchaseItemID, item.ProductName, item.HSNCode, item.Quantity, item.Rate, item.DiscountPercentage, item.Amount); err != nil {
			h.serverError(w, "unable to add sale items", err)
			return
		}
	}

	var row saleRow
	if err := tx.Get(&row, `SELECT `+saleColumns+` FROM sales WHERE id = ?`, saleID); err != nil {
		h.serverError(w, "unable to load sale", err)
		return
	}

	if err := tx.Commit(); err != nil {
		h.serverError(w, "unable to finalize sale", err)
		return
	}

	sale := row.toDomain()
	sale.Items = items
	respondJSON(w, http.StatusCreated, sale)
}

// matchPurchaseItem resolves a requested line against the purchase's
// items: by stable item id when the request carries one, otherwise by
// case-insensitive trimmed product-name equality.
func matchPurchaseItem(items []domain.PurchaseItem, itemID, productName string) *domain.PurchaseItem {
	if itemID != "" {
		for i := range items {
			if items[i].ID == itemID {
				return &items[i]
			}
		}
		return nil
	}
	want := strings.ToLower(strings.TrimSpace(productName))
	for i := range items {
		if strings.ToLower(strings.TrimSpace(items[i].ProductName)) == want {
			return &items[i]
		}
	}
	return nil
}

// Sale reads

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	var rows []saleRow
	if err := h.db.Select(&rows, `SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC, rowid DESC`); err != nil {
		h.serverError(w, "unable to list sales", err)
		return
	}
	if len(rows) == 0 {
		respondJSON(w, http.StatusOK, []domain.Sale{})
		return
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	itemsBySale, err := h.loadSaleItems(ids)
	if err != nil {
		h.serverError(w, "unable to load sale items", err)
		return
	}
	usersByID, err := h.loadSaleUsers(rows)
	if err != nil {
		h.serverError(w, "unable to load sale buyers", err)
		return
	}

	sales := make([]domain.Sale, len(rows))
	for i, row := range rows {
		sale := row.toDomain()
		sale.Items = make([]domain.SaleItem, 0, len(itemsBySale[row.ID]))
		for _, item := range itemsBySale[row.ID] {
			si := itemRowToDomain(item)
			if item.PurchaseID != "" {
				// List view only expands the despatch reference.
				si.Purchase = &domain.SaleItemPurchase{
					ID:                item.PurchaseID,
					DespatchedThrough: item.SrcDespatchedThrough,
				}
			}
			sale.Items = append(sale.Items, si)
		}
		if row.UserID != nil {
			if u, ok := usersByID[*row.UserID]; ok {
				sale.User = &domain.User{ID: u.ID, UserName: u.UserName, Email: u.Email}
			}
		}
		sales[i] = sale
	}

	respondJSON(w, http.StatusOK, sales)
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.loadSale(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Sales record not found")
			return
		}
		h.serverError(w, "unable to load sale", err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

// loadSale fetches one sale with items, purchase-line fields and the full
// buyer expanded. Returns sql.ErrNoRows when the sale does not exist.
func (h *Handler) loadSale(id string) (domain.Sale, error) {
	var row saleRow
	if err := h.db.Get(&row, `SELECT `+saleColumns+` FROM sales WHERE id = ?`, id); err != nil {
		return domain.Sale{}, err
	}

	sale := row.toDomain()

	itemsBySale, err := h.loadSaleItems([]string{id})
	if err != nil {
		return domain.Sale{}, err
	}
	sale.Items = make([]domain.SaleItem, 0, len(itemsBySale[id]))
	for _, item := range itemsBySale[id] {
		si := itemRowToDomain(item)
		if item.PurchaseItemID != "" {
			si.Purchase = &domain.SaleItemPurchase{
				ID:                item.PurchaseID,
				ProductName:       item.SrcProductName,
				HSNCode:           item.SrcHSNCode,
				SellingPrice:      item.SrcSellingPrice,
				GST:               item.SrcGST,
				DespatchedThrough: item.SrcDespatchedThrough,
			}
		}
		sale.Items = append(sale.Items, si)
	}

	if row.UserID != nil {
		var user domain.User
		err := h.db.Get(&user, `SELECT id, user_name, email, created_at FROM users WHERE id = ?`, *row.UserID)
		if err == nil {
			sale.User = &user
		} else if !errors.Is(err, sql.ErrNoRows) {
			return domain.Sale{}, err
		}
	}

	return sale, nil
}

func (h *Handler) loadSaleItems(saleIDs []string) (map[string][]saleItemRow, error) {
	query, args, err := sqlx.In(saleItemQuery, saleIDs)
	if err != nil {
		return nil, err
	}
	var rows []saleItemRow
	if err := h.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	itemsBySale := make(map[string][]saleItemRow)
	for _, row := range rows {
		itemsBySale[row.SaleID] = append(itemsBySale[row.SaleID], row)
	}
	return itemsBySale, nil
}

func (h *Handler) loadSaleUsers(rows []saleRow) (map[int64]domain.User, error) {
	var ids []int64
	seen := make(map[int64]bool)
	for _, row := range rows {
		if row.UserID != nil && !seen[*row.UserID] {
			seen[*row.UserID] = true
			ids = append(ids, *row.UserID)
		}
	}
	usersByID := make(map[int64]domain.User)
	if len(ids) == 0 {
		return usersByID, nil
	}
	query, args, err := sqlx.In(`SELECT id, user_name, email FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := h.db.Select(&users, query, args...); err != nil {
		return nil, err
	}
	for _, u := range users {
		usersByID[u.ID] = u
	}
	return usersByID, nil
}

func itemRowToDomain(row saleItemRow) domain.SaleItem {
	return domain.SaleItem{
		ProductName:        row.ProductName,
		HSNCode:            row.HSNCode,
		Quantity:           row.Quantity,
		PurchaseID:         row.PurchaseID,
		PurchaseItemID:     row.PurchaseItemID,
		Rate:               row.Rate,
		DiscountPercentage: row.DiscountPercentage,
		Amount:             row.Amount,
	}
}

// Sale update / delete

type saleUpdateItem struct {
	ProductName        string  `json:"productName"`
	HSNCode            string  `json:"hsnCode"`
	Quantity           int64   `json:"quantity"`
	PurchaseID         string  `json:"purchaseId"`
	PurchaseItemID     string  `json:"purchaseItemId"`
	Rate               float64 `json:"rate"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Amount             float64 `json:"amount"`
}

type saleUpdateRequest struct {
	UserID            *int64                `json:"userId"`
	InvoiceNumber     *string               `json:"invoiceNumber"`
	InvoiceDate       *string               `json:"invoiceDate"`
	BillingDate       *string               `json:"billingDate"`
	DueDate           *string               `json:"dueDate"`
	ModeOfPayment     *string               `json:"modeOfPayment"`
	OtherRef          *string               `json:"otherRef"`
	GRNoDate          *string               `json:"GRNoDate"`
	DeliveryNote      *string               `json:"deliveryNote"`
	SupplierRef       *string               `json:"supplierRef"`
	BuyerOrderNo      *string               `json:"buyerOrderNo"`
	DeliveryNoteDate  *string               `json:"deliveryNoteDate"`
	DespatchedThrough *string               `json:"despatchedThrough"`
	Destination       *string               `json:"destination"`
	TermsOfDelivery   *string               `json:"termsOfDelivery"`
	SellerDetails     *domain.SellerDetails `json:"sellerDetails"`
	BuyerDetails      *domain.BuyerDetails  `json:"buyerDetails"`
	SubTotal          *float64              `json:"subTotal"`
	RoundOff          *float64              `json:"roundOff"`
	GrandTotal        *float64              `json:"grandTotal"`
	Items             *[]saleUpdateItem     `json:"items"`
}

// updateSale overwrites exactly the supplied fields. It deliberately does
// not recompute totals or reconcile stock counters, and it answers 201 on
// success; both quirks are part of the existing API contract.
func (h *Handler) updateSale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"msg": "Invalid Sale ID"})
		return
	}

	var req saleUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid request body"})
		return
	}

	var exists bool
	if err := h.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM sales WHERE id = ?)`, id); err != nil {
		h.updateServerError(w, err)
		return
	}
	if !exists {
		respondJSON(w, http.StatusNotFound, map[string]string{"msg": "Sale not found"})
		return
	}

	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	var args []any
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if req.UserID != nil {
		set("user_id", *req.UserID)
	}
	if req.InvoiceNumber != nil {
		set("invoice_number", *req.InvoiceNumber)
	}
	if req.InvoiceDate != nil {
		set("invoice_date", *req.InvoiceDate)
	}
	if req.BillingDate != nil {
		set("billing_date", *req.BillingDate)
	}
	if req.DueDate != nil {
		set("due_date", *req.DueDate)
	}
	if req.ModeOfPayment != nil {
		set("mode_of_payment", *req.ModeOfPayment)
	}
	if req.OtherRef != nil {
		set("other_ref", *req.OtherRef)
	}
	if req.GRNoDate != nil {
		set("gr_no_date", *req.GRNoDate)
	}
	if req.DeliveryNote != nil {
		set("delivery_note", *req.DeliveryNote)
	}
	if req.SupplierRef != nil {
		set("supplier_ref", *req.SupplierRef)
	}
	if req.BuyerOrderNo != nil {
		set("buyer_order_no", *req.BuyerOrderNo)
	}
	if req.DeliveryNoteDate != nil {
		set("delivery_note_date", *req.DeliveryNoteDate)
	}
	if req.DespatchedThrough != nil {
		set("despatched_through", *req.DespatchedThrough)
	}
	if req.Destination != nil {
		set("destination", *req.Destination)
	}
	if req.TermsOfDelivery != nil {
		set("terms_of_delivery", *req.TermsOfDelivery)
	}
	if req.SellerDetails != nil {
		set("seller_name", req.SellerDetails.Name)
		set("seller_address", req.SellerDetails.Address)
	}
	if req.BuyerDetails != nil {
		set("buyer_name", req.BuyerDetails.Name)
		set("buyer_email", req.BuyerDetails.Email)
		set("buyer_phone", req.BuyerDetails.Phone)
		set("buyer_address", req.BuyerDetails.Address)
		set("buyer_state", req.BuyerDetails.State)
	}
	if req.SubTotal != nil {
		set("sub_total", *req.SubTotal)
	}
	if req.RoundOff != nil {
		set("round_off", *req.RoundOff)
	}
	if req.GrandTotal != nil {
		set("grand_total", *req.GrandTotal)
	}

	tx, err := h.db.Beginx()
	if err != nil {
		h.updateServerError(w, err)
		return
	}
	defer tx.Rollback()

	args = append(args, id)
	if _, err := tx.Exec(`UPDATE sales SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		// An invalid enum value trips the mode_of_payment CHECK here.
		h.updateServerError(w, err)
		return
	}

	if req.Items != nil {
		if _, err := tx.Exec(`DELETE FROM sale_items WHERE sale_id = ?`, id); err != nil {
			h.updateServerError(w, err)
			return
		}
		for _, item := range *req.Items {
			if _, err := tx.Exec(`INSERT INTO sale_items (sale_id, purchase_id, purchase_item_id, product_name, hsn_code, quantity, rate, discount_percentage, amount)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, item.PurchaseID, item.PurchaseItemID, item.ProductName, item.HSNCode, item.Quantity, item.Rate, item.DiscountPercentage, item.Amount); err != nil {
				h.updateServerError(w, err)
				return
			}
		}
	}

	if err := tx.Commit(); err != nil {
		h.updateServerError(w, err)
		return
	}

	sale, err := h.loadSale(id)
	if err != nil {
		h.updateServerError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"msg":  "Sale updated successfully",
		"sale": sale,
	})
}

// The update path reports failures under a "msg" key, unlike the rest of
// the API.
func (h *Handler) updateServerError(w http.ResponseWriter, err error) {
	h.log.Error("unable to update sale", zap.Error(err))
	respondJSON(w, http.StatusInternalServerError, map[string]string{"msg": "Server Error"})
}

func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var exists bool
	if err := h.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM sales WHERE id = ?)`, id); err != nil {
		h.serverError(w, "unable to load sale", err)
		return
	}
	if !exists {
		respondError(w, http.StatusNotFound, "Sales record not found")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		h.serverError(w, "unable to start delete", err)
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sale_items WHERE sale_id = ?`, id); err != nil {
		h.serverError(w, "unable to delete sale items", err)
		return
	}
	if _, err := tx.Exec(`DELETE FROM sales WHERE id = ?`, id); err != nil {
		h.serverError(w, "unable to delete sale", err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.serverError(w, "unable to finalize delete", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Sales record deleted successfully"})
}
