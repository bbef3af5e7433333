package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListPurchases(t *testing.T) {
	srv, db := newTestServer(t)
	token, _ := registerUser(t, srv, "Clerk", "clerk@example.com")

	created := seedPurchase(t, srv, token, []map[string]any{
		{"productName": "Widget", "hsnCode": "8471", "gst": 18, "sellingPrice": 100.0, "salesQuantity": 10},
		{"productName": "Gadget", "hsnCode": "8473", "gst": 12, "sellingPrice": 55.5, "salesQuantity": 4},
	})

	purchaseID := created["id"].(string)
	require.NotEmpty(t, purchaseID)
	items := created["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.NotEmpty(t, first["id"], "line items get stable ids")
	assert.Equal(t, "Widget", first["productName"])
	assert.Equal(t, float64(10), first["salesQuantity"])

	// Stock counters land in the database.
	qty := stockOf(t, db, first["id"].(string))
	require.NotNil(t, qty)
	assert.Equal(t, int64(10), *qty)

	status, raw := doRequest(t, http.MethodGet, srv.URL+"/api/v1/purchase", token, nil)
	require.Equal(t, http.StatusOK, status)
	purchases := jsonSlice(t, raw)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Acme Traders", purchases[0]["supplierName"])
	assert.Len(t, purchases[0]["items"].([]any), 2)

	status, raw = doRequest(t, http.MethodGet, srv.URL+"/api/v1/purchase/"+purchaseID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, purchaseID, jsonMap(t, raw)["id"])

	status, raw = doRequest(t, http.MethodGet, srv.URL+"/api/v1/purchase/missing-id", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Purchase not found", jsonMap(t, raw)["message"])
}

func TestCreatePurchaseValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := registerUser(t, srv, "Clerk", "clerk@example.com")

	status, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/purchase", token, map[string]any{
		"supplierName": "Acme Traders",
		"items":        []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No purchase items provided", jsonMap(t, raw)["message"])

	status, raw = doRequest(t, http.MethodPost, srv.URL+"/api/v1/purchase", token, map[string]any{
		"supplierName": "Acme Traders",
		"items":        []map[string]any{{"productName": "", "sellingPrice": 10}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "productName is required for each purchase item", jsonMap(t, raw)["message"])

	status, raw = doRequest(t, http.MethodPost, srv.URL+"/api/v1/purchase", token, map[string]any{
		"supplierName": "Acme Traders",
		"items":        []map[string]any{{"productName": "Widget", "sellingPrice": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "sellingPrice must be greater than zero", jsonMap(t, raw)["message"])
}

func TestCompanyCRUD(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := registerUser(t, srv, "Owner", "owner@example.com")

	status, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/company", token, map[string]any{
		"name":    "EMA Enterprises",
		"address": "12 Market Road",
		"gstin":   "29ABCDE1234F1Z5",
		"state":   "Karnataka",
	})
	require.Equal(t, http.StatusCreated, status)
	companyID := jsonMap(t, raw)["id"].(float64)

	status, raw = doRequest(t, http.MethodGet, srv.URL+"/api/v1/company", token, nil)
	require.Equal(t, http.StatusOK, status)
	companies := jsonSlice(t, raw)
	require.Len(t, companies, 1)
	assert.Equal(t, "EMA Enterprises", companies[0]["name"])

	status, _ = doRequest(t, http.MethodPut, srv.URL+"/api/v1/company/9999", token, map[string]any{
		"name": "Ghost Co",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, http.MethodPut, srv.URL+"/api/v1/company/"+itoa(int64(companyID)), token, map[string]any{
		"name":  "EMA Enterprises Pvt Ltd",
		"state": "Karnataka",
	})
	assert.Equal(t, http.StatusOK, status)

	status, raw = doRequest(t, http.MethodGet, srv.URL+"/api/v1/company", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "EMA Enterprises Pvt Ltd", jsonSlice(t, raw)[0]["name"])

	status, raw = doRequest(t, http.MethodPost, srv.URL+"/api/v1/company", token, map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name is required", jsonMap(t, raw)["message"])
}
