package usecase

import (
	"context"

	"vendorwatch/internal/domain/entity"
)

// --- Input DTOs ---

// CreatePropertyInput defines the data required to add a property manually.
type CreatePropertyInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Area    string `json:"area"`
	Region  string `json:"region"`
	Market  string `json:"market"`
}

// UpdatePropertyInput is a partial update: only non-nil fields are written.
type UpdatePropertyInput struct {
	Name               *string  `json:"name,omitempty"`
	Address            *string  `json:"address,omitempty"`
	City               *string  `json:"city,omitempty"`
	State              *string  `json:"state,omitempty"`
	Zip                *string  `json:"zip,omitempty"`
	Area               *string  `json:"area,omitempty"`
	Region             *string  `json:"region,omitempty"`
	Market             *string  `json:"market,omitempty"`
	UnitCount          *int     `json:"unit_count,omitempty"`
	OnNationalContract *bool    `json:"on_national_contract,omitempty"`
	VendorName         *string  `json:"vendor_name,omitempty"`
	VendorRating       *int     `json:"vendor_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	AccountNumber      *string  `json:"account_number,omitempty"`
	CurrentPrice       *float64 `json:"current_price,omitempty"`
	BillingFrequency   *string  `json:"billing_frequency,omitempty"`
}

// SetStatusInput declares a manual status.
type SetStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// ContactInput defines a property contact create or update.
type ContactInput struct {
	Name      string `json:"name" validate:"required"`
	Role      string `json:"role"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}

// ContractInput defines a non-elevator service agreement create or update.
type ContractInput struct {
	Category  string  `json:"category" validate:"required"`
	Vendor    string  `json:"vendor"`
	Status    string  `json:"status"`
	Cost      float64 `json:"cost"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Rating    int     `json:"rating" validate:"gte=0,lte=10"`
}

// PropertyUsecase defines the interface for single-property business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type PropertyUsecase interface {
	GetProperty(ctx context.Context, viewer *entity.UserProfile, id string) (*PropertyView, error)
	CreateProperty(ctx context.Context, viewer *entity.UserProfile, input CreatePropertyInput) (*PropertyView, error)
	UpdateProperty(ctx context.Context, viewer *entity.UserProfile, id string, input UpdatePropertyInput) (*PropertyView, error)
	DeleteProperty(ctx context.Context, viewer *entity.UserProfile, id string) error

	// SetManualStatus writes a manual declaration (or pending_review) and
	// stamps statusUpdatedAt. Only manual declarations are accepted.
	SetManualStatus(ctx context.Context, viewer *entity.UserProfile, id string, input SetStatusInput) (*PropertyView, error)

	AddContact(ctx context.Context, viewer *entity.UserProfile, propertyID string, input ContactInput) (*entity.Contact, error)
	UpdateContact(ctx context.Context, viewer *entity.UserProfile, propertyID, contactID string, input ContactInput) (*entity.Contact, error)
	DeleteContact(ctx context.Context, viewer *entity.UserProfile, propertyID, contactID string) error

	AddContract(ctx context.Context, viewer *entity.UserProfile, propertyID string, input ContractInput) (*entity.Contract, error)
	UpdateContract(ctx context.Context, viewer *entity.UserProfile, propertyID, contractID string, input ContractInput) (*entity.Contract, error)
	DeleteContract(ctx context.Context, viewer *entity.UserProfile, propertyID, contractID string) error

	// GeneratePropertyTag renders the machine-room QR label for a property.
	GeneratePropertyTag(ctx context.Context, viewer *entity.UserProfile, id string) ([]byte, error)
}
