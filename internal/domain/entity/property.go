package entity

import "time"

// Personnel is a name/email/phone triple identifying an assigned person.
type Personnel struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Vendor is the service provider sub-record of a property.
type Vendor struct {
	Name             string  `json:"name"`
	Rating           int     `json:"rating"` // 1-10, 0 when unrated
	AccountNumber    string  `json:"accountNumber,omitempty"`
	CurrentPrice     float64 `json:"currentPrice"` // monthly price
	BillingFrequency string  `json:"billingFrequency,omitempty"`
}

// ContractTerms holds the contract term facts of a property's primary
// (elevator) service agreement. Dates are kept as entered; consumers parse
// them tolerantly and treat unparseable values as missing data.
type ContractTerms struct {
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	InitialTermMonths int    `json:"initialTermMonths"`
	RenewalTermMonths int    `json:"renewalTermMonths"`
	// CancellationWindow is free text encoding one or two day-counts before the
	// end date, e.g. "120 - 90 Days". Consumers extract all embedded integers.
	CancellationWindow      string  `json:"cancellationWindow"`
	AutoRenew               bool    `json:"autoRenew"`
	PriceCapPercent         float64 `json:"priceCapPercent,omitempty"`
	EarlyTerminationPenalty string  `json:"earlyTerminationPenalty,omitempty"`
}

// Property is the central entity of the portfolio: one building with its
// vendor relationship, contract terms, contacts and documents.
type Property struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`

	// Organizational hierarchy
	Area   string `json:"area"`
	Region string `json:"region"`
	Market string `json:"market"`

	Manager         Personnel `json:"manager"`
	RegionalManager Personnel `json:"regionalManager"`

	UnitCount int `json:"unitCount"` // elevator units on site

	// Status holds manual declarations and the wizard's pending_review marker.
	// Every read path derives the effective status from raw facts instead of
	// trusting this field.
	Status          PropertyStatus `json:"status,omitempty"`
	StatusUpdatedAt *time.Time     `json:"statusUpdatedAt,omitempty"`

	OnNationalContract bool `json:"onNationalContract"`

	Vendor Vendor        `json:"vendor"`
	Terms  ContractTerms `json:"terms"`

	Contacts  []Contact          `json:"contacts,omitempty"`
	Documents []PropertyDocument `json:"documents,omitempty"`
	// Contracts holds non-elevator service agreements (HVAC, fire safety, ...).
	Contracts []Contract `json:"contracts,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Contact is a person attached to a property. At most one contact per
// property is primary; the write path enforces it, the store does not.
type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

// PropertyDocument is metadata for an uploaded file (contract PDF, photo).
type PropertyDocument struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType,omitempty"`
	UploadedBy  string    `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
	StoragePath string    `json:"-"`
	Checksum    string    `json:"checksum,omitempty"`
	SizeBytes   int64     `json:"sizeBytes"`
}

// Contract is a non-elevator service agreement owned by a property.
type Contract struct {
	ID        string             `json:"id"`
	Category  string             `json:"category"`
	Vendor    string             `json:"vendor"`
	Status    string             `json:"status,omitempty"`
	Cost      float64            `json:"cost"`
	StartDate string             `json:"startDate,omitempty"`
	EndDate   string             `json:"endDate,omitempty"`
	Rating    int                `json:"rating,omitempty"`
	Documents []PropertyDocument `json:"documents,omitempty"`
}
