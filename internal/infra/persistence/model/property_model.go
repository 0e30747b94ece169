// Package model contains the persistence representations of domain entities,
// tagged for the Firestore document store. Mapping functions keep the domain
// entities free of storage concerns.
package model

import (
	"time"

	"vendorwatch/internal/domain/entity"
)

// PersonnelModel mirrors entity.Personnel.
type PersonnelModel struct {
	Name  string `firestore:"name"`
	Email string `firestore:"email"`
	Phone string `firestore:"phone"`
}

// VendorModel mirrors entity.Vendor.
type VendorModel struct {
	Name             string  `firestore:"name"`
	Rating           int     `firestore:"rating"`
	AccountNumber    string  `firestore:"accountNumber"`
	CurrentPrice     float64 `firestore:"currentPrice"`
	BillingFrequency string  `firestore:"billingFrequency"`
}

// ContractTermsModel mirrors entity.ContractTerms.
type ContractTermsModel struct {
	StartDate               string  `firestore:"startDate"`
	EndDate                 string  `firestore:"endDate"`
	InitialTermMonths       int     `firestore:"initialTermMonths"`
	RenewalTermMonths       int     `firestore:"renewalTermMonths"`
	CancellationWindow      string  `firestore:"cancellationWindow"`
	AutoRenew               bool    `firestore:"autoRenew"`
	PriceCapPercent         float64 `firestore:"priceCapPercent"`
	EarlyTerminationPenalty string  `firestore:"earlyTerminationPenalty"`
}

// ContactModel mirrors entity.Contact.
type ContactModel struct {
	ID        string `firestore:"id"`
	Name      string `firestore:"name"`
	Role      string `firestore:"role"`
	Email     string `firestore:"email"`
	Phone     string `firestore:"phone"`
	IsPrimary bool   `firestore:"isPrimary"`
}

// DocumentModel mirrors entity.PropertyDocument.
type DocumentModel struct {
	ID          string    `firestore:"id"`
	Name        string    `firestore:"name"`
	URL         string    `firestore:"url"`
	ContentType string    `firestore:"contentType"`
	UploadedBy  string    `firestore:"uploadedBy"`
	UploadedAt  time.Time `firestore:"uploadedAt"`
	StoragePath string    `firestore:"storagePath"`
	Checksum    string    `firestore:"checksum"`
	SizeBytes   int64     `firestore:"sizeBytes"`
}

// ContractModel mirrors entity.Contract.
type ContractModel struct {
	ID        string          `firestore:"id"`
	Category  string          `firestore:"category"`
	Vendor    string          `firestore:"vendor"`
	Status    string          `firestore:"status"`
	Cost      float64         `firestore:"cost"`
	StartDate string          `firestore:"startDate"`
	EndDate   string          `firestore:"endDate"`
	Rating    int             `firestore:"rating"`
	Documents []DocumentModel `firestore:"documents"`
}

// PropertyModel is the stored form of a property document. The document ID
// duplicates the ID field so queries can filter on it.
type PropertyModel struct {
	ID      string `firestore:"id"`
	Name    string `firestore:"name"`
	Address string `firestore:"address"`
	City    string `firestore:"city"`
	State   string `firestore:"state"`
	Zip     string `firestore:"zip"`

	Area   string `firestore:"area"`
	Region string `firestore:"region"`
	Market string `firestore:"market"`

	Manager         PersonnelModel `firestore:"manager"`
	RegionalManager PersonnelModel `firestore:"regionalManager"`

	UnitCount int `firestore:"unitCount"`

	Status          string     `firestore:"status"`
	StatusUpdatedAt *time.Time `firestore:"statusUpdatedAt"`

	OnNationalContract bool `firestore:"onNationalContract"`

	Vendor VendorModel        `firestore:"vendor"`
	Terms  ContractTermsModel `firestore:"terms"`

	Contacts  []ContactModel  `firestore:"contacts"`
	Documents []DocumentModel `firestore:"documents"`
	Contracts []ContractModel `firestore:"contracts"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// FromPropertyDomain maps a pure domain entity to its stored form.
func FromPropertyDomain(p *entity.Property) *PropertyModel {
	m := &PropertyModel{
		ID:      p.ID,
		Name:    p.Name,
		Address: p.Address,
		City:    p.City,
		State:   p.State,
		Zip:     p.Zip,

		Area:   p.Area,
		Region: p.Region,
		Market: p.Market,

		Manager:         PersonnelModel(p.Manager),
		RegionalManager: PersonnelModel(p.RegionalManager),

		UnitCount: p.UnitCount,

		Status:          p.Status.String(),
		StatusUpdatedAt: p.StatusUpdatedAt,

		OnNationalContract: p.OnNationalContract,

		Vendor: VendorModel(p.Vendor),
		Terms:  ContractTermsModel(p.Terms),

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	for _, c := range p.Contacts {
		m.Contacts = append(m.Contacts, ContactModel(c))
	}
	for _, d := range p.Documents {
		m.Documents = append(m.Documents, DocumentModel(d))
	}
	for _, c := range p.Contracts {
		m.Contracts = append(m.Contracts, fromContractDomain(c))
	}

	return m
}

// ToPropertyDomain maps a stored document back to a pure domain entity.
func ToPropertyDomain(m *PropertyModel) *entity.Property {
	p := &entity.Property{
		ID:      m.ID,
		Name:    m.Name,
		Address: m.Address,
		City:    m.City,
		State:   m.State,
		Zip:     m.Zip,

		Area:   m.Area,
		Region: m.Region,
		Market: m.Market,

		Manager:         entity.Personnel(m.Manager),
		RegionalManager: entity.Personnel(m.RegionalManager),

		UnitCount: m.UnitCount,

		Status:          entity.PropertyStatus(m.Status),
		StatusUpdatedAt: m.StatusUpdatedAt,

		OnNationalContract: m.OnNationalContract,

		Vendor: entity.Vendor(m.Vendor),
		Terms:  entity.ContractTerms(m.Terms),

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	for _, c := range m.Contacts {
		p.Contacts = append(p.Contacts, entity.Contact(c))
	}
	for _, d := range m.Documents {
		p.Documents = append(p.Documents, entity.PropertyDocument(d))
	}
	for _, c := range m.Contracts {
		p.Contracts = append(p.Contracts, toContractDomain(c))
	}

	return p
}

func fromContractDomain(c entity.Contract) ContractModel {
	m := ContractModel{
		ID:        c.ID,
		Category:  c.Category,
		Vendor:    c.Vendor,
		Status:    c.Status,
		Cost:      c.Cost,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Rating:    c.Rating,
	}
	for _, d := range c.Documents {
		m.Documents = append(m.Documents, DocumentModel(d))
	}

	return m
}

func toContractDomain(m ContractModel) entity.Contract {
	c := entity.Contract{
		ID:        m.ID,
		Category:  m.Category,
		Vendor:    m.Vendor,
		Status:    m.Status,
		Cost:      m.Cost,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Rating:    m.Rating,
	}
	for _, d := range m.Documents {
		c.Documents = append(c.Documents, entity.PropertyDocument(d))
	}

	return c
}
