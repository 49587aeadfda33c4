package handler

import (
	"github.com/storefront/shop-api/internal/core/ports"
)

// --- Request → Service input ---

func (r registerRequest) toProfileInput() ports.ProfileInput {
	return ports.ProfileInput{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		Street:    r.Street,
		Apartment: r.Apartment,
		Zip:       r.Zip,
		City:      r.City,
		Country:   r.Country,
	}
}

func (r createUserRequest) toProfileInput() ports.ProfileInput {
	in := r.registerRequest.toProfileInput()
	isAdmin := r.IsAdmin
	in.IsAdmin = &isAdmin
	return in
}

func (r updateUserRequest) toProfileInput() ports.ProfileInput {
	return ports.ProfileInput{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		IsAdmin:   r.IsAdmin,
		Street:    r.Street,
		Apartment: r.Apartment,
		Zip:       r.Zip,
		City:      r.City,
		Country:   r.Country,
	}
}

func toCreateOrderInput(req createOrderRequest, idempotencyKey string) ports.CreateOrderInput {
	items := make([]ports.OrderItemInput, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		items = append(items, ports.OrderItemInput{ProductID: it.Product, Quantity: it.Quantity})
	}
	return ports.CreateOrderInput{
		Items:            items,
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
		Status:           req.Status,
		UserID:           req.User,
		IdempotencyKey:   idempotencyKey,
	}
}

func (r createProductRequest) toProductInput() ports.ProductInput {
	return ports.ProductInput{
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		CountInStock: r.CountInStock,
	}
}
