package dashboard

import (
	"context"
	"fmt"

	"github.com/ymgs-pharma/storefront/internal/guard"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	"github.com/ymgs-pharma/storefront/pkg/logger"
)

// AdminAPI is the slice of the backend client the admin dashboard consumes.
type AdminAPI interface {
	AdminStats(ctx context.Context) (*api.AdminStats, error)
	AdminListPharmacies(ctx context.Context) ([]api.Pharmacy, error)
	AdminVerifyPharmacy(ctx context.Context, pharmacyID int64) error
	AdminApprovePharmacy(ctx context.Context, pharmacyID int64) error
	AdminDeletePharmacy(ctx context.Context, pharmacyID int64) error
	AdminListProducts(ctx context.Context, page, limit int) (*api.ProductList, error)
	AdminDeleteProduct(ctx context.Context, productID int64) error
	AdminListOrders(ctx context.Context) ([]api.Order, error)
	AdminUpdateOrderStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error
}

// AdminService backs the admin dashboard.
type AdminService struct {
	api  AdminAPI
	sess guard.Session
	log  *logger.Logger
}

// NewAdminService wires the admin dashboard service.
func NewAdminService(client AdminAPI, sess guard.Session, log *logger.Logger) (*AdminService, error) {
	if client == nil {
		return nil, fmt.Errorf("api client is required")
	}
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}
	return &AdminService{api: client, sess: sess, log: log}, nil
}

// Overview is the dashboard landing block: counters plus recent orders.
type Overview struct {
	Stats  api.AdminStats
	Orders []api.Order
}

// Overview loads the counters and the order list in one call.
func (s *AdminService) Overview(ctx context.Context) (*Overview, error) {
	if err := requireRole(s.sess, enums.RoleAdmin); err != nil {
		return nil, err
	}
	stats, err := s.api.AdminStats(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.api.AdminListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{Stats: *stats, Orders: orders}, nil
}

// Pharmacies lists every registered pharmacy.
func (s *AdminService) Pharmacies(ctx context.Context) ([]api.Pharmacy, error) {
	if err := requireRole(s.sess, enums.RoleAdmin); err != nil {
		return nil, err
	}
	return s.api.AdminListPharmacies(ctx)
}

// VerifyPharmacy marks a pharmacy's license as checked.
func (s *AdminService) VerifyPharmacy(ctx context.Context, pharmacyID int64) error {
	if err := requireRole(s.sess, enums.RoleAdmin); err != nil {
		return err
	}
	return s.api.AdminVerifyPharmacy(ctx, pharmacyID)
}

// ApprovePharmacy admits a verified pharmacy to the storefront.
func (s *AdminService) ApprovePharmacy(ctx context.Context, pharmacyID int64) error {
	if err := requireRole(s.sess, enums.RoleAdmin); err != nil {
		return err
	}
	return s.api.AdminApprovePharmacy(ctx, pharmacyID)
}

// RemovePharmacy deletes a pharmacy and its catalog.
func (s *AdminService) RemovePharmacy(ctx context.Context, pharmacyID int64) error {
	if err := requireRole(s.sess, enums.RoleAdmin); err != nil {
		return err
	}
	return s.api.AdminDeletePharmacy(ctx, pharmacyID)
}

// Products pages through the cross-pharmacy catalog.
func (s *AdminService) Products(ctx context.Context, page, limit int) (*api.ProductList, error) {
	if err := requireRole(s.sess, enums.RoleAdmin); err != nil {
		return nil, err
	}
	return s.api.AdminListProducts(ctx, page, limit)
}

// RemoveProduct deletes a product from the catalog.
func (s *AdminService) RemoveProduct(ctx context.Context, productID int64) error {
	if err := requireRole(s.sess, enums.RoleAdmin); err != nil {
		return err
	}
	return s.api.AdminDeleteProduct(ctx, productID)
}

// Orders lists every order for oversight.
func (s *AdminService) Orders(ctx context.Context) ([]api.Order, error) {
	if err := requireRole(s.sess, enums.RoleAdmin); err != nil {
		return nil, err
	}
	return s.api.AdminListOrders(ctx)
}

// UpdateOrderStatus transitions any order to a known status.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	if err := requireRole(s.sess, enums.RoleAdmin); err != nil {
		return err
	}
	if !status.IsValid() {
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.api.AdminUpdateOrderStatus(ctx, orderID, status)
}
