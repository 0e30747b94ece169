package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "vendorwatch/internal/delivery/context"
	"vendorwatch/internal/domain/entity"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/domain/service"
	"vendorwatch/internal/domain/status"
	"vendorwatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxRenewalRolls caps the auto-renew projection loop; a contract that rolls
// further than this is treated as data entry error, not a real term.
const maxRenewalRolls = 50

// wizardSteps is the linear step sequence of the verification flow.
var wizardSteps = []usecase.StepDefinition{
	{Index: 0, Name: "vendor", Title: "Service provider", Fields: []string{"vendor_name"}},
	{Index: 1, Name: "rating", Title: "Vendor rating", Fields: []string{"vendor_rating"}},
	{Index: 2, Name: "account", Title: "Account and billing", Fields: []string{"account_number", "billing_frequency"}},
	{Index: 3, Name: "units", Title: "Elevator units", Fields: []string{"unit_count"}},
	{Index: 4, Name: "pricing", Title: "Monthly price", Fields: []string{"current_price"}},
	{Index: 5, Name: "term", Title: "Contract start and term", Fields: []string{"start_date", "initial_term_months"}},
	{Index: 6, Name: "renewal", Title: "Renewal behavior", Fields: []string{"auto_renew", "renewal_term_months"}},
	{Index: 7, Name: "cancellation", Title: "Cancellation window", Fields: []string{"cancellation_window"}},
	{Index: 8, Name: "protections", Title: "Price cap and penalties", Fields: []string{"price_cap_percent", "early_termination_penalty"}},
	{Index: 9, Name: "review", Title: "Review and confirm", Fields: []string{"primary_contact", "on_national_contract", "notes"}},
}

// wizardService implements the WizardUsecase interface.
type wizardService struct {
	propertyRepo repository.PropertyRepository
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// WizardServiceParams holds dependencies for WizardService, injected by Fx.
type WizardServiceParams struct {
	fx.In

	PropertyRepo repository.PropertyRepository
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewWizardService is the constructor for wizardService.
func NewWizardService(params WizardServiceParams) usecase.WizardUsecase {
	return &wizardService{
		propertyRepo: params.PropertyRepo,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *wizardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Steps lists the step definitions in order.
func (srv *wizardService) Steps() []usecase.StepDefinition {
	steps := make([]usecase.StepDefinition, len(wizardSteps))
	copy(steps, wizardSteps)

	return steps
}

// CheckStep reports whether the state satisfies the given step. Steps past
// the end of the sequence never advance.
func (srv *wizardService) CheckStep(step int, state *usecase.WizardState) usecase.StepCheck {
	if step < 0 || step >= len(wizardSteps) || state == nil {
		return usecase.StepCheck{CanAdvance: false}
	}

	missing := missingFields(step, state)

	return usecase.StepCheck{
		CanAdvance: len(missing) == 0,
		Missing:    missing,
	}
}

// missingFields returns the required fields the state does not yet satisfy
// for one step. Optional steps (protections, review) have no requirements.
func missingFields(step int, state *usecase.WizardState) []string {
	var missing []string

	switch wizardSteps[step].Name {
	case "vendor":
		if state.VendorName == "" {
			missing = append(missing, "vendor_name")
		}
	case "rating":
		// Ratings run 1-10; zero is the unset value and does not advance.
		if state.VendorRating < 1 || state.VendorRating > 10 {
			missing = append(missing, "vendor_rating")
		}
	case "account":
		if state.BillingFrequency == "" {
			missing = append(missing, "billing_frequency")
		}
	case "units":
		if state.UnitCount <= 0 {
			missing = append(missing, "unit_count")
		}
	case "pricing":
		if state.CurrentPrice <= 0 {
			missing = append(missing, "current_price")
		}
	case "term":
		if _, ok := status.ParseDate(state.StartDate); !ok {
			missing = append(missing, "start_date")
		}
		if state.InitialTermMonths <= 0 {
			missing = append(missing, "initial_term_months")
		}
	case "renewal":
		if state.AutoRenew && state.RenewalTermMonths <= 0 {
			missing = append(missing, "renewal_term_months")
		}
	case "cancellation":
		if _, _, ok := status.ParseCancellationWindow(state.CancellationWindow); !ok {
			missing = append(missing, "cancellation_window")
		}
	}

	return missing
}

// Complete validates every step, projects the current contract end date and
// persists the verified facts with status pending_review.
func (srv *wizardService) Complete(ctx context.Context, viewer *entity.UserProfile, propertyID string, state *usecase.WizardState) (*usecase.CompleteWizardOutput, error) {
	if err := requireEditor(viewer); err != nil {
		return nil, err
	}
	if state == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("wizard state is required")
	}

	for step := range wizardSteps {
		if missing := missingFields(step, state); len(missing) > 0 {
			return nil, domainerrors.ErrWizardStepIncomplete.WithDetails(wizardSteps[step].Name)
		}
	}

	p, err := srv.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, domainerrors.ErrPropertyNotFound
		}

		return nil, err
	}
	if !viewer.VisibleScope().Allows(p, viewer.Key()) {
		return nil, domainerrors.ErrPropertyNotFound
	}

	start, _ := status.ParseDate(state.StartDate)
	today := status.Midnight(srv.now())
	end, rolled := projectEnd(start, state.InitialTermMonths, state.RenewalTermMonths, state.AutoRenew, today)

	p.Vendor = entity.Vendor{
		Name:             state.VendorName,
		Rating:           state.VendorRating,
		AccountNumber:    state.AccountNumber,
		CurrentPrice:     state.CurrentPrice,
		BillingFrequency: state.BillingFrequency,
	}
	p.UnitCount = state.UnitCount
	p.OnNationalContract = state.OnNationalContract
	p.Terms = entity.ContractTerms{
		StartDate:               state.StartDate,
		EndDate:                 status.FormatDate(end),
		InitialTermMonths:       state.InitialTermMonths,
		RenewalTermMonths:       state.RenewalTermMonths,
		CancellationWindow:      state.CancellationWindow,
		AutoRenew:               state.AutoRenew,
		PriceCapPercent:         state.PriceCapPercent,
		EarlyTerminationPenalty: state.EarlyTerminationPenalty,
	}

	if state.PrimaryContact != nil {
		demotePrimary(p.Contacts)
		p.Contacts = append(p.Contacts, entity.Contact{
			ID:        uuid.New().String(),
			Name:      state.PrimaryContact.Name,
			Role:      state.PrimaryContact.Role,
			Email:     state.PrimaryContact.Email,
			Phone:     state.PrimaryContact.Phone,
			IsPrimary: true,
		})
	}

	// The wizard stores raw facts only; status carries the review marker,
	// never a derived classification.
	now := srv.now().UTC()
	p.Status = entity.StatusPendingReview
	p.StatusUpdatedAt = &now

	if err := srv.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("wizard completed",
		slog.String("property_id", p.ID),
		slog.String("computed_end", p.Terms.EndDate),
		slog.Int("renewals_rolled", rolled),
	)

	event := &service.PropertyEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		PropertyID: p.ID,
		Name:       p.Name,
		EventType:  service.EventPropertyUpdated,
		Status:     entity.StatusPendingReview.String(),
		OccurredAt: now,
	}
	if err := srv.publisher.PublishPropertyEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("failed to publish property event",
			slog.String("property_id", p.ID),
			slog.Any("error", err),
		)
	}

	return &usecase.CompleteWizardOutput{
		Property: &usecase.PropertyView{
			Property:        p,
			EffectiveStatus: status.Classify(p, srv.now()),
		},
		ComputedEnd:    p.Terms.EndDate,
		RenewalsRolled: rolled,
	}, nil
}

// projectEnd computes the end of the current contract cycle: start plus the
// initial term, then whole renewal terms rolled forward while the contract
// auto-renews and the end is still in the past.
func projectEnd(start time.Time, initialMonths, renewalMonths int, autoRenew bool, today time.Time) (time.Time, int) {
	end := start.AddDate(0, initialMonths, 0)
	if !autoRenew || renewalMonths <= 0 {
		return end, 0
	}

	rolled := 0
	for end.Before(today) && rolled < maxRenewalRolls {
		end = end.AddDate(0, renewalMonths, 0)
		rolled++
	}

	return end, rolled
}
