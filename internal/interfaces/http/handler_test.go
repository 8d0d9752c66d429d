package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swairua/invoicing-software-sub001/internal/application/dto"
	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
	"github.com/swairua/invoicing-software-sub001/internal/infrastructure/memory"
	apphttp "github.com/swairua/invoicing-software-sub001/internal/interfaces/http"
)

// buildTestApp wires a Fiber app over a fresh in-memory store.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := lifecycle.NewService(memory.NewStore(), zerolog.Nop(), lifecycle.Config{})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Lifecycle: svc})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeDocument(t *testing.T, raw []byte) dto.DocumentResponse {
	t.Helper()
	var doc dto.DocumentResponse
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

// seedParties registers one customer and one product and returns their ids.
func seedParties(t *testing.T, app *fiber.App) (customerID, productID string) {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/customers/", dto.CreateCustomerRequest{
		Name:   "Maji Supplies Ltd",
		KRAPIN: "P051234567A",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var customer struct {
		ID string
	}
	require.NoError(t, json.Unmarshal(raw, &customer))

	resp, raw = doJSON(t, app, http.MethodPost, "/api/products/", dto.CreateProductRequest{
		SKU:            "WID-01",
		Name:           "Widget",
		SellingPrice:   decimal.NewFromInt(500),
		Taxable:        true,
		TaxRate:        decimal.NewFromInt(16),
		TrackInventory: true,
		CurrentStock:   decimal.NewFromInt(20),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var product struct {
		ID string
	}
	require.NoError(t, json.Unmarshal(raw, &product))
	return customer.ID, product.ID
}

func quotationBody(customerID, productID string) dto.CreateQuotationRequest {
	return dto.CreateQuotationRequest{
		CustomerID: customerID,
		Items: []dto.LineItemRequest{{
			ProductID:       productID,
			Quantity:        decimal.NewFromInt(5),
			DiscountPercent: decimal.NewFromInt(10),
		}},
	}
}

func TestAPI_QuotationToPaidInvoice(t *testing.T) {
	app := buildTestApp(t)
	customerID, productID := seedParties(t, app)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/quotations", quotationBody(customerID, productID))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	quotation := decodeDocument(t, raw)
	assert.Equal(t, "draft", quotation.Status)
	assert.True(t, quotation.Total.Equal(decimal.NewFromInt(2610)))

	for _, status := range []string{"sent", "accepted"} {
		resp, raw = doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/documents/quotation/%s/status", quotation.ID),
			dto.TransitionRequest{Status: status})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/quotations/%s/convert/invoice", quotation.ID), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	invoice := decodeDocument(t, raw)
	assert.Equal(t, "invoice", invoice.Kind)
	assert.Equal(t, "sent", invoice.Status)
	assert.Equal(t, "pending", invoice.EtimsStatus)
	require.NotNil(t, invoice.Balance)
	assert.True(t, invoice.Balance.Equal(invoice.Total))

	resp, raw = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/invoices/%s/payments", invoice.ID),
		dto.RecordPaymentRequest{
			Amount: decimal.NewFromInt(2610),
			Method: "mpesa",
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/documents/invoice/%s", invoice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	settled := decodeDocument(t, raw)
	assert.Equal(t, "paid", settled.Status)
	require.NotNil(t, settled.Balance)
	assert.True(t, settled.Balance.IsZero())

	// The stock debit is visible on the audit trail.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/stock-movements?product_id="+productID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var movements []dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(raw, &movements))
	require.Len(t, movements, 2)
	assert.Equal(t, invoice.Number, movements[1].Reference)
}

func TestAPI_ErrorMapping(t *testing.T) {
	app := buildTestApp(t)
	customerID, productID := seedParties(t, app)

	// Unknown invoice: 404.
	resp, raw := doJSON(t, app, http.MethodGet, "/api/documents/invoice/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodPost, "/api/quotations", quotationBody(customerID, productID))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	quotation := decodeDocument(t, raw)

	// Illegal transition: 409 with its code.
	resp, raw = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/documents/quotation/%s/status", quotation.ID),
		dto.TransitionRequest{Status: "accepted"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var fail dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &fail))
	assert.Equal(t, "INVALID_TRANSITION", fail.Code)

	// Converting an unaccepted quotation: 409.
	resp, _ = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/quotations/%s/convert/proforma", quotation.ID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Credit note without a reason: 400.
	resp, raw = doJSON(t, app, http.MethodPost, "/api/credit-notes", dto.IssueCreditNoteRequest{
		CustomerID: customerID,
		Items: []dto.LineItemRequest{{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(1),
		}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &fail))
	assert.Equal(t, "VALIDATION", fail.Code)

	// Malformed body: 400.
	req := httptest.NewRequest(http.MethodPost, "/api/quotations", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_DoubleConversionConflicts(t *testing.T) {
	app := buildTestApp(t)
	customerID, productID := seedParties(t, app)

	_, raw := doJSON(t, app, http.MethodPost, "/api/quotations", quotationBody(customerID, productID))
	quotation := decodeDocument(t, raw)
	for _, status := range []string{"sent", "accepted"} {
		resp, body := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/documents/quotation/%s/status", quotation.ID),
			dto.TransitionRequest{Status: status})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	}

	resp, raw := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/quotations/%s/convert/proforma", quotation.ID), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/quotations/%s/convert/proforma", quotation.ID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var fail dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &fail))
	assert.Equal(t, "ALREADY_CONVERTED", fail.Code)
}

func TestAPI_ListDocumentsFiltersByStatus(t *testing.T) {
	app := buildTestApp(t)
	customerID, productID := seedParties(t, app)

	_, raw := doJSON(t, app, http.MethodPost, "/api/quotations", quotationBody(customerID, productID))
	first := decodeDocument(t, raw)
	_, _ = doJSON(t, app, http.MethodPost, "/api/quotations", quotationBody(customerID, productID))

	resp, body := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/documents/quotation/%s/status", first.ID),
		dto.TransitionRequest{Status: "sent"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/documents/quotation?status=sent", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sent []dto.DocumentResponse
	require.NoError(t, json.Unmarshal(raw, &sent))
	require.Len(t, sent, 1)
	assert.Equal(t, first.ID, sent[0].ID)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/documents/quotation", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []dto.DocumentResponse
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all, 2)
}
