package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"coupon-manager/internal/middleware"
	"coupon-manager/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCouponService is a mock implementation of CouponService.
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) List(ctx context.Context, callerID uuid.UUID, limit, offset int) ([]model.Coupon, error) {
	args := m.Called(ctx, callerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponService) GetByID(ctx context.Context, callerID, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponService) Create(ctx context.Context, callerID uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, callerID, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	args := m.Called(ctx, callerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}

func (m *MockCouponService) Search(ctx context.Context, callerID uuid.UUID, query string) ([]model.Coupon, error) {
	args := m.Called(ctx, callerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponService) Redeem(ctx context.Context, callerID, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// newRequest builds a request the way the router would hand it to a handler:
// with the {id} URL parameter set and, unless callerID is uuid.Nil, an
// authenticated caller in the context.
func newRequest(method, target, body, id string, callerID uuid.UUID) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	rctx := chi.NewRouteContext()
	if id != "" {
		rctx.URLParams.Add("id", id)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)

	if callerID != uuid.Nil {
		ctx = middleware.WithUserID(ctx, callerID)
	}

	return req.WithContext(ctx)
}
