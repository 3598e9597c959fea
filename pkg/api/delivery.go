package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ymgs-pharma/storefront/pkg/enums"
)

// DeliveryRegistration completes a delivery agent's profile.
type DeliveryRegistration struct {
	Phone   string `json:"phone" validate:"required"`
	Vehicle string `json:"vehicle" validate:"required"`
	Zone    string `json:"zone,omitempty"`
}

// RegisterDeliveryProfile submits the delivery profile for the logged-in
// agent.
func (c *Client) RegisterDeliveryProfile(ctx context.Context, req DeliveryRegistration) error {
	return c.do(ctx, http.MethodPost, "/delivery/register", req, nil)
}

// DeliveryAssignedOrders lists orders assigned to the agent.
func (c *Client) DeliveryAssignedOrders(ctx context.Context) ([]Order, error) {
	var out struct {
		envelope
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/delivery/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// DeliveryUpdateOrderStatus moves an assigned order along the delivery flow.
func (c *Client) DeliveryUpdateOrderStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	body := map[string]any{"status": status}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/delivery/order/%d/status", orderID), body, nil)
}
