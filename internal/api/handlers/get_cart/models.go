package get_cart

import "github.com/salonbook/SBP-CheckoutService/internal/domain"

// CartLineResponse позиция корзины с актуальной ценой из каталога
type CartLineResponse struct {
	ItemID      int64  `json:"itemId"`
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"lineTotal"`
}

// CartResponse HTTP response model
type CartResponse struct {
	SalonID  int64              `json:"salonId,omitempty"`
	Lines    []CartLineResponse `json:"lines"`
	Subtotal string             `json:"subtotal"`
}

// FromDomainView конвертирует снимок корзины в HTTP response
func FromDomainView(view *domain.CartView) *CartResponse {
	lines := make([]CartLineResponse, len(view.Lines))
	for i, line := range view.Lines {
		lines[i] = CartLineResponse{
			ItemID:      line.Item.ID,
			ServiceID:   line.Item.ServiceID,
			ServiceName: line.ServiceName,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			Quantity:    line.Item.Quantity,
			LineTotal:   line.LineTotal.StringFixed(2),
		}
	}

	return &CartResponse{
		SalonID:  view.SalonID,
		Lines:    lines,
		Subtotal: view.Subtotal.StringFixed(2),
	}
}
