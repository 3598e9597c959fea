package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/ymgs-pharma/storefront/internal/guard"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	"github.com/ymgs-pharma/storefront/pkg/forms"
	"github.com/ymgs-pharma/storefront/pkg/logger"
)

// PharmacyAPI is the slice of the backend client the pharmacy dashboard
// consumes.
type PharmacyAPI interface {
	RegisterPharmacy(ctx context.Context, req api.PharmacyRegistration) error
	PharmacyListProducts(ctx context.Context, page, limit int) (*api.ProductList, error)
	PharmacyCreateProduct(ctx context.Context, req api.PharmacyProductInput) (*api.Product, error)
	PharmacyUpdateProduct(ctx context.Context, productID int64, req api.PharmacyProductInput) error
	PharmacyDeleteProduct(ctx context.Context, productID int64) error
	PharmacyImportProducts(ctx context.Context, rows []api.PharmacyProductInput) (int, error)
}

// PharmacyService backs the pharmacy owner's dashboard.
type PharmacyService struct {
	api  PharmacyAPI
	sess guard.Session
	log  *logger.Logger
}

// NewPharmacyService wires the pharmacy dashboard service.
func NewPharmacyService(client PharmacyAPI, sess guard.Session, log *logger.Logger) (*PharmacyService, error) {
	if client == nil {
		return nil, fmt.Errorf("api client is required")
	}
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}
	return &PharmacyService{api: client, sess: sess, log: log}, nil
}

// Register completes the pharmacist's onboarding. This is the one pharmacy
// call allowed before the profile exists.
func (s *PharmacyService) Register(ctx context.Context, req api.PharmacyRegistration) error {
	decision := guard.Decide(s.sess, guard.Rule{Role: enums.RolePharmacist})
	if decision.Verdict != guard.Allow {
		return requireRole(s.sess, enums.RolePharmacist)
	}
	if err := forms.Check(req); err != nil {
		return err
	}
	return s.api.RegisterPharmacy(ctx, req)
}

// Products pages through the pharmacy's own catalog.
func (s *PharmacyService) Products(ctx context.Context, page, limit int) (*api.ProductList, error) {
	if err := requireRole(s.sess, enums.RolePharmacist); err != nil {
		return nil, err
	}
	return s.api.PharmacyListProducts(ctx, page, limit)
}

// CreateProduct validates and adds one product.
func (s *PharmacyService) CreateProduct(ctx context.Context, req api.PharmacyProductInput) (*api.Product, error) {
	if err := requireRole(s.sess, enums.RolePharmacist); err != nil {
		return nil, err
	}
	if err := forms.Check(req); err != nil {
		return nil, err
	}
	return s.api.PharmacyCreateProduct(ctx, req)
}

// UpdateProduct validates and updates one product.
func (s *PharmacyService) UpdateProduct(ctx context.Context, productID int64, req api.PharmacyProductInput) error {
	if err := requireRole(s.sess, enums.RolePharmacist); err != nil {
		return err
	}
	if err := forms.Check(req); err != nil {
		return err
	}
	return s.api.PharmacyUpdateProduct(ctx, productID, req)
}

// RemoveProduct deletes one product.
func (s *PharmacyService) RemoveProduct(ctx context.Context, productID int64) error {
	if err := requireRole(s.sess, enums.RolePharmacist); err != nil {
		return err
	}
	return s.api.PharmacyDeleteProduct(ctx, productID)
}

// ImportReport summarizes a bulk import: how many rows were submitted, how
// many the backend accepted, and every per-row validation failure.
type ImportReport struct {
	Submitted int
	Imported  int
	RowErrors error
}

// ImportProducts validates every row, submits the valid ones in a single
// request and reports the rejected rows. Nothing is submitted when no row
// validates.
func (s *PharmacyService) ImportProducts(ctx context.Context, rows []api.PharmacyProductInput) (*ImportReport, error) {
	if err := requireRole(s.sess, enums.RolePharmacist); err != nil {
		return nil, err
	}

	report := &ImportReport{}
	valid := make([]api.PharmacyProductInput, 0, len(rows))
	for i, row := range rows {
		if err := forms.Check(row); err != nil {
			report.RowErrors = multierr.Append(report.RowErrors, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		valid = append(valid, row)
	}
	report.Submitted = len(valid)
	if len(valid) == 0 {
		return report, nil
	}

	imported, err := s.api.PharmacyImportProducts(ctx, valid)
	if err != nil {
		return nil, err
	}
	report.Imported = imported
	return report, nil
}
