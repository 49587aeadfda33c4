package handler

import (
	"github.com/storefront/shop-api/internal/api/response"
	"github.com/storefront/shop-api/internal/core/domain"
)

// errorResponse documents the error envelope for swag.
type errorResponse = response.Envelope

// --- Users ---

type registerRequest struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// createUserRequest is the admin variant of registration; it may grant admin.
type createUserRequest struct {
	registerRequest
	IsAdmin bool `json:"isAdmin"`
}

// updateUserRequest fields are optional; omitted ones keep their stored value.
type updateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Password  string `json:"password"  validate:"omitempty,min=6"`
	Phone     string `json:"phone"`
	IsAdmin   *bool  `json:"isAdmin"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// --- Orders ---

type orderItemRequest struct {
	Product  string `json:"product"  validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	OrderItems       []orderItemRequest `json:"orderItems"       validate:"required,min=1,dive"`
	ShippingAddress1 string             `json:"shippingAddress1" validate:"required"`
	ShippingAddress2 string             `json:"shippingAddress2"`
	City             string             `json:"city"             validate:"required"`
	Zip              string             `json:"zip"              validate:"required"`
	Country          string             `json:"country"          validate:"required"`
	Phone            string             `json:"phone"            validate:"required"`
	Status           string             `json:"status"           validate:"omitempty,oneof=Pending Processing Shipped Delivered Cancelled"`
	User             string             `json:"user"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Processing Shipped Delivered Cancelled"`
}

type totalSalesResponse struct {
	TotalSales float64 `json:"totalsales"`
}

type orderEventsResponse struct {
	OrderID string               `json:"orderId"`
	Events  []*domain.OrderEvent `json:"events"`
}

// --- Products ---

type createProductRequest struct {
	Name         string  `json:"name"         validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"        validate:"gte=0"`
	CountInStock int     `json:"countInStock" validate:"gte=0,lte=255"`
}
