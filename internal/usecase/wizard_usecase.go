package usecase

import (
	"context"

	"vendorwatch/internal/domain/entity"
)

// WizardState carries the contract facts collected across the verification
// wizard's steps. Field presence is validated per step, not per request.
type WizardState struct {
	VendorName       string  `json:"vendor_name"`
	VendorRating     int     `json:"vendor_rating" validate:"gte=0,lte=10"`
	AccountNumber    string  `json:"account_number"`
	UnitCount        int     `json:"unit_count"`
	CurrentPrice     float64 `json:"current_price"`
	BillingFrequency string  `json:"billing_frequency"`

	StartDate         string `json:"start_date"`
	InitialTermMonths int    `json:"initial_term_months"`
	RenewalTermMonths int    `json:"renewal_term_months"`
	AutoRenew         bool   `json:"auto_renew"`

	CancellationWindow      string  `json:"cancellation_window"`
	PriceCapPercent         float64 `json:"price_cap_percent"`
	EarlyTerminationPenalty string  `json:"early_termination_penalty"`

	OnNationalContract bool `json:"on_national_contract"`

	PrimaryContact *ContactInput `json:"primary_contact,omitempty"`

	Notes string `json:"notes"`
}

// StepDefinition describes one wizard step for the client.
type StepDefinition struct {
	Index  int      `json:"index"`
	Name   string   `json:"name"`
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// StepCheck is the result of a CanAdvance probe.
type StepCheck struct {
	CanAdvance bool     `json:"can_advance"`
	Missing    []string `json:"missing,omitempty"`
}

// CompleteWizardOutput reports the derived term projection after completion.
type CompleteWizardOutput struct {
	Property       *PropertyView `json:"property"`
	ComputedEnd    string        `json:"computed_end"`
	RenewalsRolled int           `json:"renewals_rolled"`
}

// WizardUsecase drives the contract verification flow: a linear step
// sequence whose completion writes raw facts and flags the property for
// review.
type WizardUsecase interface {
	// Steps lists the step definitions in order.
	Steps() []StepDefinition

	// CheckStep reports whether the state satisfies the given step.
	CheckStep(step int, state *WizardState) StepCheck

	// Complete validates every step, computes the projected contract end
	// date (rolling auto-renewals forward past today, capped), and persists
	// the facts with status pending_review.
	Complete(ctx context.Context, viewer *entity.UserProfile, propertyID string, state *WizardState) (*CompleteWizardOutput, error)
}
