package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/broki/marketplace-api/internal/api/handlers"
	"github.com/broki/marketplace-api/internal/application/services"
	"github.com/broki/marketplace-api/internal/domain/entities"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) List(ctx context.Context, status, limit, offset int) (*services.ServiceListing, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ServiceListing), args.Error(1)
}

func (m *MockListingService) Detail(ctx context.Context, id int64) (*services.ServiceDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ServiceDetail), args.Error(1)
}

func amount(s string) entities.Amount {
	return entities.Amount{Decimal: decimal.RequireFromString(s)}
}

func sampleService() *entities.Service {
	return &entities.Service{
		ID:          8,
		Name:        "Deep Cleaning",
		Price:       amount("1499.5"),
		Status:      1,
		Attachments: []entities.Attachment{{ID: 1, URL: "https://img.example.com/s.jpg"}},
	}
}

func TestServiceHandler_ListServices(t *testing.T) {
	svc := new(MockListingService)
	h := handlers.NewServiceHandler(svc)
	svc.On("List", mock.Anything, 1, 7, 7).Return(&services.ServiceListing{
		Services: []*entities.Service{sampleService()},
		Total:    8,
		Max:      amount("2500"),
		Min:      amount("99"),
	}, nil)

	rr := httptest.NewRecorder()
	h.ListServices(rr, httptest.NewRequest(http.MethodGet, "/api/service-list/?page=2", nil))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	assert.Equal(t, "2500.00", body["max"])
	assert.Equal(t, "99.00", body["min"])
	assert.Nil(t, body["user_services"])

	meta := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(8), meta["total_items"])
	assert.Equal(t, float64(2), meta["currentPage"])
	assert.Equal(t, float64(2), meta["totalPages"])
	assert.Equal(t, float64(8), meta["from"])
	assert.Equal(t, float64(8), meta["to"])
	assert.Nil(t, meta["next_page"])
	assert.Equal(t, "http://example.com/api/service-list/", meta["previous_page"])

	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	item := data[0].(map[string]interface{})
	assert.Equal(t, "₹1499.50", item["price_format"])
	assert.Equal(t, []interface{}{"https://img.example.com/s.jpg"}, item["attchments"])
	assert.Equal(t, []interface{}{}, item["slots"])
}

func TestServiceHandler_ListServices_StatusFilter(t *testing.T) {
	svc := new(MockListingService)
	h := handlers.NewServiceHandler(svc)
	svc.On("List", mock.Anything, 0, 3, 0).Return(&services.ServiceListing{}, nil)

	rr := httptest.NewRecorder()
	h.ListServices(rr, httptest.NewRequest(http.MethodGet, "/api/service-list/?status=0&per_page=3", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "0.00", body["max"])
	assert.Equal(t, []interface{}{}, body["data"])
}

func TestServiceHandler_ListServices_BadStatus(t *testing.T) {
	h := handlers.NewServiceHandler(new(MockListingService))

	rr := httptest.NewRecorder()
	h.ListServices(rr, httptest.NewRequest(http.MethodGet, "/api/service-list/?status=on", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"status":["A valid integer is required."]}`, rr.Body.String())
}

func TestServiceHandler_GetServiceDetail(t *testing.T) {
	svc := new(MockListingService)
	h := handlers.NewServiceHandler(svc)

	related := sampleService()
	related.ID = 9
	svc.On("Detail", mock.Anything, int64(8)).Return(&services.ServiceDetail{
		Service: sampleService(),
		Related: []*entities.Service{related},
		Coupons: []*entities.Coupon{{Code: "CLEAN10", DiscountType: entities.DiscountPercent, DiscountValue: amount("10")}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/service-detail/8/", nil)
	req.SetPathValue("id", "8")
	rr := httptest.NewRecorder()
	h.GetServiceDetail(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)

	detail := body["service_detail"].(map[string]interface{})
	assert.Equal(t, "Deep Cleaning", detail["name"])
	assert.Nil(t, detail["provider"])
	assert.Equal(t, []interface{}{}, detail["service_address_mapping"])

	for _, key := range []string{"customer_review", "taxes", "service_faq", "serviceaddon"} {
		assert.Equal(t, []interface{}{}, body[key], key)
	}
	assert.Len(t, body["coupon_data"], 1)

	relatedItems := body["related_service"].([]interface{})
	require.Len(t, relatedItems, 1)
	assert.Equal(t, float64(9), relatedItems[0].(map[string]interface{})["id"])
}

func TestServiceHandler_GetServiceDetail_NotFound(t *testing.T) {
	svc := new(MockListingService)
	h := handlers.NewServiceHandler(svc)
	svc.On("Detail", mock.Anything, int64(404)).Return(nil, apperrors.NewNotFoundError("service not found"))

	tests := []string{"404", "abc", "0"}
	for _, id := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/service-detail/"+id+"/", nil)
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()
		h.GetServiceDetail(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code, id)
		assert.JSONEq(t, `{"error":"Service not found"}`, rr.Body.String(), id)
	}
	svc.AssertNumberOfCalls(t, "Detail", 1)
}
