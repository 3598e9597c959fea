package dashboard

import (
	"context"
	"fmt"

	"github.com/ymgs-pharma/storefront/internal/guard"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	"github.com/ymgs-pharma/storefront/pkg/forms"
	"github.com/ymgs-pharma/storefront/pkg/logger"
)

// DeliveryAPI is the slice of the backend client the delivery dashboard
// consumes.
type DeliveryAPI interface {
	RegisterDeliveryProfile(ctx context.Context, req api.DeliveryRegistration) error
	DeliveryAssignedOrders(ctx context.Context) ([]api.Order, error)
	DeliveryUpdateOrderStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error
}

// DeliveryService backs the delivery agent's dashboard.
type DeliveryService struct {
	api  DeliveryAPI
	sess guard.Session
	log  *logger.Logger
}

// deliveryStatuses are the transitions an agent may set; everything else is
// the pharmacy's or admin's call.
var deliveryStatuses = []enums.OrderStatus{
	enums.OrderStatusOutForDelivery,
	enums.OrderStatusDelivered,
}

// NewDeliveryService wires the delivery dashboard service.
func NewDeliveryService(client DeliveryAPI, sess guard.Session, log *logger.Logger) (*DeliveryService, error) {
	if client == nil {
		return nil, fmt.Errorf("api client is required")
	}
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}
	return &DeliveryService{api: client, sess: sess, log: log}, nil
}

// Register completes the agent's onboarding. Allowed before the delivery
// profile exists.
func (s *DeliveryService) Register(ctx context.Context, req api.DeliveryRegistration) error {
	decision := guard.Decide(s.sess, guard.Rule{Role: enums.RoleDelivery})
	if decision.Verdict != guard.Allow {
		return requireRole(s.sess, enums.RoleDelivery)
	}
	if err := forms.Check(req); err != nil {
		return err
	}
	return s.api.RegisterDeliveryProfile(ctx, req)
}

// AssignedOrders lists the agent's open deliveries.
func (s *DeliveryService) AssignedOrders(ctx context.Context) ([]api.Order, error) {
	if err := requireRole(s.sess, enums.RoleDelivery); err != nil {
		return nil, err
	}
	return s.api.DeliveryAssignedOrders(ctx)
}

// UpdateOrderStatus moves an assigned order along the delivery flow.
func (s *DeliveryService) UpdateOrderStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	if err := requireRole(s.sess, enums.RoleDelivery); err != nil {
		return err
	}
	allowed := false
	for _, candidate := range deliveryStatuses {
		if candidate == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("status %q is not a delivery transition", status)
	}
	return s.api.DeliveryUpdateOrderStatus(ctx, orderID, status)
}
