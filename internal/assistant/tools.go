package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"retail-concierge/internal/recommend"
	"retail-concierge/internal/service"
)

// Toolbox binds the model's callable tools to the backing services.
// Tool results are serialized to JSON and fed back into the conversation.
type Toolbox struct {
	recommender recommend.Service
	inventory   service.InventoryService
	fulfillment service.FulfillmentService
	payments    service.PaymentService
	loyalty     service.LoyaltyService
	orders      service.OrderService
}

// NewToolbox creates a new Toolbox over the agent services
func NewToolbox(
	recommender recommend.Service,
	inventory service.InventoryService,
	fulfillment service.FulfillmentService,
	payments service.PaymentService,
	loyalty service.LoyaltyService,
	orders service.OrderService,
) *Toolbox {
	return &Toolbox{
		recommender: recommender,
		inventory:   inventory,
		fulfillment: fulfillment,
		payments:    payments,
		loyalty:     loyalty,
		orders:      orders,
	}
}

// Definitions lists the tools exposed to the model.
func (t *Toolbox) Definitions() []ToolDef {
	return []ToolDef{
		{
			Name:        "get_recommendations",
			Description: "Get personalized product recommendations, bundle suggestions and active promotions for the current shopping context",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"context": map[string]any{
						"type":        "string",
						"description": "What the user is shopping for, in their own words",
					},
					"count": map[string]any{
						"type":        "integer",
						"description": "How many products to recommend",
					},
				},
				"required": []string{"context"},
			},
		},
		{
			Name:        "check_inventory",
			Description: "Check online and in-store stock availability for a product, optionally narrowed to a city or region",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"product_id": map[string]any{
						"type":        "string",
						"description": "Catalog product ID, e.g. SKU_JCK_01",
					},
					"city": map[string]any{
						"type":        "string",
						"description": "City or region to filter store availability",
					},
				},
				"required": []string{"product_id"},
			},
		},
		{
			Name:        "reserve_in_store",
			Description: "Place a 24 hour in-store hold on a product for the user",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"product_id": map[string]any{"type": "string"},
					"store_id":   map[string]any{"type": "string"},
				},
				"required": []string{"product_id", "store_id"},
			},
		},
		{
			Name:        "initiate_checkout",
			Description: "Start a checkout session for the user's cart and return a payment gateway link",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"cart_id": map[string]any{"type": "string"},
					"amount": map[string]any{
						"type":        "number",
						"description": "Cart total",
					},
					"currency": map[string]any{"type": "string"},
				},
				"required": []string{"cart_id", "amount"},
			},
		},
		{
			Name:        "get_applicable_offers",
			Description: "Look up the user's loyalty standing, segment offer and eligible coupons for a cart",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"cart_id": map[string]any{"type": "string"},
					"cart_amount": map[string]any{
						"type":        "number",
						"description": "Cart total before discounts",
					},
				},
				"required": []string{"cart_id"},
			},
		},
		{
			Name:        "get_order_status",
			Description: "Get tracking status and delivery estimate for a previously placed order",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"order_id": map[string]any{"type": "string"},
				},
				"required": []string{"order_id"},
			},
		},
	}
}

// Execute runs one tool call on behalf of userID and returns the JSON
// result. Tool failures are returned as error payloads rather than Go
// errors so the model can react to them.
func (t *Toolbox) Execute(ctx context.Context, userID string, call ToolCall) string {
	result, err := t.dispatch(ctx, userID, call)
	if err != nil {
		return toolError(err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return toolError(fmt.Errorf("failed to encode tool result: %w", err))
	}
	return string(encoded)
}

func (t *Toolbox) dispatch(ctx context.Context, userID string, call ToolCall) (any, error) {
	switch call.Name {
	case "get_recommendations":
		var args struct {
			Context string `json:"context"`
			Count   int    `json:"count"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("invalid tool arguments: %w", err)
		}
		if args.Count <= 0 {
			args.Count = 3
		}
		return t.recommender.Recommend(ctx, userID, args.Context, args.Count)

	case "check_inventory":
		var args struct {
			ProductID string `json:"product_id"`
			City      string `json:"city"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("invalid tool arguments: %w", err)
		}
		var location *service.LocationContext
		if args.City != "" {
			location = &service.LocationContext{City: args.City}
		}
		return t.inventory.CheckInventory(ctx, args.ProductID, nil, location)

	case "reserve_in_store":
		var args struct {
			ProductID string `json:"product_id"`
			StoreID   string `json:"store_id"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("invalid tool arguments: %w", err)
		}
		return t.fulfillment.ReserveInStore(ctx, userID, args.ProductID, args.StoreID)

	case "initiate_checkout":
		var args struct {
			CartID   string  `json:"cart_id"`
			Amount   float64 `json:"amount"`
			Currency string  `json:"currency"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("invalid tool arguments: %w", err)
		}
		txn, gatewayURL, err := t.payments.InitiateCheckout(ctx, userID, args.CartID, args.Amount, args.Currency)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"transaction": txn,
			"payment_url": gatewayURL,
		}, nil

	case "get_applicable_offers":
		var args struct {
			CartID     string  `json:"cart_id"`
			CartAmount float64 `json:"cart_amount"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("invalid tool arguments: %w", err)
		}
		return t.loyalty.GetApplicableOffers(ctx, userID, args.CartID, args.CartAmount)

	case "get_order_status":
		var args struct {
			OrderID string `json:"order_id"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("invalid tool arguments: %w", err)
		}
		return t.orders.GetOrderStatus(ctx, args.OrderID, userID)

	default:
		return nil, fmt.Errorf("unknown tool %q", call.Name)
	}
}

func toolError(err error) string {
	encoded, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(encoded)
}
