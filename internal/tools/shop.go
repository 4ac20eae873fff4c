package tools

import (
	"context"
	"encoding/json"

	"github.com/ashureev/voicebooth/internal/catalog"
	"github.com/ashureev/voicebooth/internal/session"
	"github.com/ashureev/voicebooth/internal/shop"
	"github.com/openai/openai-go/v3"
)

var listProductsDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "list_products",
	Description: openai.String("List catalog products, optionally filtered by category, color, size, price range, or free text."),
	Parameters: openai.FunctionParameters{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]string{
				"type":        "string",
				"description": "Product category, e.g. phones, mugs, t-shirts",
			},
			"color": map[string]string{
				"type": "string",
			},
			"size": map[string]string{
				"type": "string",
			},
			"query": map[string]string{
				"type":        "string",
				"description": "Free-text match over name and description",
			},
			"min_price": map[string]string{
				"type": "number",
			},
			"max_price": map[string]string{
				"type": "number",
			},
		},
	},
})

var productDetailsDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "product_details",
	Description: openai.String("Describe one product referenced by id, name, or position like 'the first phone'."),
	Parameters: openai.FunctionParameters{
		"type": "object",
		"properties": map[string]any{
			"reference": map[string]string{
				"type":        "string",
				"description": "How the user referred to the product",
			},
		},
		"required": []string{"reference"},
	},
})

var addToCartDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "add_to_cart",
	Description: openai.String("Add a product to the cart. The product may be referenced by id, name, or position."),
	Parameters: openai.FunctionParameters{
		"type": "object",
		"properties": map[string]any{
			"reference": map[string]string{
				"type":        "string",
				"description": "How the user referred to the product",
			},
			"quantity": map[string]string{
				"type":        "integer",
				"description": "How many to add (defaults to 1)",
			},
		},
		"required": []string{"reference"},
	},
})

var viewCartDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "view_cart",
	Description: openai.String("Describe the current cart contents and total."),
	Parameters: openai.FunctionParameters{
		"type":       "object",
		"properties": map[string]any{},
	},
})

var clearCartDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "clear_cart",
	Description: openai.String("Remove everything from the cart."),
	Parameters: openai.FunctionParameters{
		"type":       "object",
		"properties": map[string]any{},
	},
})

var placeOrderDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "place_order",
	Description: openai.String("Place an order for the current cart contents."),
	Parameters: openai.FunctionParameters{
		"type":       "object",
		"properties": map[string]any{},
	},
})

var orderHistoryDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "order_history",
	Description: openai.String("Recap the orders placed in this session."),
	Parameters: openai.FunctionParameters{
		"type":       "object",
		"properties": map[string]any{},
	},
})

func shopTools(assistant *shop.Assistant) []Tool {
	return []Tool{
		{
			Name:       "list_products",
			Agent:      AgentShop,
			Definition: listProductsDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				var in struct {
					Category string   `json:"category"`
					Color    string   `json:"color"`
					Size     string   `json:"size"`
					Query    string   `json:"query"`
					MinPrice *float64 `json:"min_price"`
					MaxPrice *float64 `json:"max_price"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return badArgsReply
				}
				sess.RecordEvent("list_products", 0, in.Category)
				return assistant.ListProducts(catalog.Filter{
					Category: in.Category,
					Color:    in.Color,
					Size:     in.Size,
					Query:    in.Query,
					MinPrice: in.MinPrice,
					MaxPrice: in.MaxPrice,
				})
			},
		},
		{
			Name:       "product_details",
			Agent:      AgentShop,
			Definition: productDetailsDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				var in struct {
					Reference string `json:"reference"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return badArgsReply
				}
				sess.RecordEvent("product_details", 0, in.Reference)
				return assistant.ProductDetails(in.Reference)
			},
		},
		{
			Name:       "add_to_cart",
			Agent:      AgentShop,
			Definition: addToCartDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				var in struct {
					Reference string `json:"reference"`
					Quantity  *int   `json:"quantity"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return badArgsReply
				}
				qty := 1
				if in.Quantity != nil {
					qty = *in.Quantity
				}
				sess.RecordEvent("add_to_cart", 0, in.Reference)
				return assistant.AddToCart(&sess.Cart, in.Reference, qty)
			},
		},
		{
			Name:       "view_cart",
			Agent:      AgentShop,
			Definition: viewCartDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				return assistant.ViewCart(&sess.Cart)
			},
		},
		{
			Name:       "clear_cart",
			Agent:      AgentShop,
			Definition: clearCartDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				sess.RecordEvent("clear_cart", 0, "")
				return assistant.ClearCart(&sess.Cart)
			},
		},
		{
			Name:       "place_order",
			Agent:      AgentShop,
			Definition: placeOrderDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				out := assistant.PlaceOrder(ctx, &sess.Cart, &sess.OrderHistory)
				if n := len(sess.OrderHistory); n > 0 && sess.Cart.IsEmpty() {
					sess.RecordEvent("place_order", 0, sess.OrderHistory[n-1].OrderID)
				}
				return out
			},
		},
		{
			Name:       "order_history",
			Agent:      AgentShop,
			Definition: orderHistoryDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				return assistant.OrderHistory(sess.OrderHistory)
			},
		},
	}
}
