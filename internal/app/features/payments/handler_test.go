package payments_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitnest/fitnest/internal/app/features/payments"
	"github.com/fitnest/fitnest/internal/app/gateway"
	paymentstore "github.com/fitnest/fitnest/internal/app/store/payments"
	slotstore "github.com/fitnest/fitnest/internal/app/store/slots"
	"github.com/fitnest/fitnest/internal/app/system/indexes"
	"github.com/fitnest/fitnest/internal/testutil"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateIntent(ctx context.Context, req gateway.IntentRequest) (*gateway.Intent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Intent), args.Error(1)
}

func TestCreateIntent(t *testing.T) {
	gw := &mockGateway{}
	gw.On("CreateIntent", mock.Anything, mock.MatchedBy(func(req gateway.IntentRequest) bool {
		return req.AmountMinor == 2550 && req.Currency == "USD"
	})).Return(&gateway.Intent{ClientSecret: "pref-abc"}, nil)

	h := &payments.Handler{Gateway: gw, Currency: "USD", Validate: validator.New(), Log: zap.NewNop()}

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"price":25.50}`))
	rec := httptest.NewRecorder()
	h.CreateIntent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clientSecret":"pref-abc"`)
	gw.AssertExpectations(t)
}

func TestCreateIntent_GatewayFailure(t *testing.T) {
	gw := &mockGateway{}
	gw.On("CreateIntent", mock.Anything, mock.Anything).Return(nil, gateway.ErrGateway)

	h := &payments.Handler{Gateway: gw, Currency: "USD", Validate: validator.New(), Log: zap.NewNop()}

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"price":10}`))
	rec := httptest.NewRecorder()
	h.CreateIntent(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreateIntent_Validation(t *testing.T) {
	h := &payments.Handler{Validate: validator.New(), Log: zap.NewNop()}

	for _, body := range []string{`{}`, `{"price":0}`, `{"price":-5}`} {
		req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.CreateIntent(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestRecord_ThenConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	fixtures := testutil.NewFixtures(t, db)
	slot := fixtures.CreateSlot(ctx, "trainer@example.com")

	h := payments.NewHandler(paymentstore.New(db), slotstore.New(db, zap.NewNop()),
		nil, "USD", validator.New(), zap.NewNop())

	body := `{"userEmail":"payer@example.com","slotId":"` + slot.ID.Hex() + `","amount":20,"gatewayRef":"pref-1"}`
	req := httptest.NewRequest("POST", "/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Record(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest("POST", "/payments", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.Record(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBookedSlots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fixtures := testutil.NewFixtures(t, db)
	slot := fixtures.CreateSlot(ctx, "trainer@example.com")

	h := payments.NewHandler(paymentstore.New(db), slotstore.New(db, zap.NewNop()),
		nil, "USD", validator.New(), zap.NewNop())

	body := `{"userEmail":"payer@example.com","slotId":"` + slot.ID.Hex() + `","amount":20}`
	req := httptest.NewRequest("POST", "/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Record(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest("GET", "/payments/booked-slots?email=payer@example.com", nil)
	rec = httptest.NewRecorder()
	h.BookedSlots(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), slot.ID.Hex())
}

func TestBookedSlots_MissingEmail(t *testing.T) {
	h := &payments.Handler{Validate: validator.New(), Log: zap.NewNop()}

	req := httptest.NewRequest("GET", "/payments/booked-slots", nil)
	rec := httptest.NewRecorder()
	h.BookedSlots(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRevenue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := payments.NewHandler(paymentstore.New(db), slotstore.New(db, zap.NewNop()),
		nil, "USD", validator.New(), zap.NewNop())

	req := httptest.NewRequest("GET", "/payments/revenue", nil)
	rec := httptest.NewRecorder()
	h.Revenue(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)
}
