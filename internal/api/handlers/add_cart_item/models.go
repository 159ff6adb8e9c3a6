package add_cart_item

import "github.com/salonbook/SBP-CheckoutService/internal/domain"

// AddCartItemRequest HTTP request model
type AddCartItemRequest struct {
	ServiceID int64 `json:"serviceId"`
	Quantity  int   `json:"quantity"`
}

// CartItemResponse HTTP response model
type CartItemResponse struct {
	ID        int64 `json:"id"`
	SalonID   int64 `json:"salonId"`
	ServiceID int64 `json:"serviceId"`
	Quantity  int   `json:"quantity"`
}

// FromDomainItem конвертирует domain модель в HTTP response
func FromDomainItem(item *domain.CartItem) *CartItemResponse {
	return &CartItemResponse{
		ID:        item.ID,
		SalonID:   item.SalonID,
		ServiceID: item.ServiceID,
		Quantity:  item.Quantity,
	}
}
