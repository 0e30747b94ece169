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

// propertyService implements the PropertyUsecase interface.
type propertyService struct {
	propertyRepo repository.PropertyRepository
	qrService    service.QRCodeService
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// PropertyServiceParams holds dependencies for PropertyService, injected by Fx.
type PropertyServiceParams struct {
	fx.In

	PropertyRepo repository.PropertyRepository
	QRService    service.QRCodeService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewPropertyService is the constructor for propertyService.
func NewPropertyService(params PropertyServiceParams) usecase.PropertyUsecase {
	return &propertyService{
		propertyRepo: params.PropertyRepo,
		qrService:    params.QRService,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *propertyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// loadVisible fetches a property and checks the viewer may see it. Out-of-scope
// properties read as not found rather than forbidden, so scope membership is
// not probeable.
func (srv *propertyService) loadVisible(ctx context.Context, viewer *entity.UserProfile, id string) (*entity.Property, error) {
	p, err := srv.propertyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, domainerrors.ErrPropertyNotFound
		}

		return nil, err
	}

	if !viewer.VisibleScope().Allows(p, viewer.Key()) {
		return nil, domainerrors.ErrPropertyNotFound
	}

	return p, nil
}

func requireEditor(viewer *entity.UserProfile) error {
	if !viewer.Role.CanEditProperties() {
		return domainerrors.ErrForbidden.WrapMessage("role may not edit properties")
	}

	return nil
}

func (srv *propertyService) view(p *entity.Property) *usecase.PropertyView {
	return &usecase.PropertyView{
		Property:        p,
		EffectiveStatus: status.Classify(p, srv.now()),
	}
}

func (srv *propertyService) publishUpdated(ctx context.Context, p *entity.Property) {
	event := &service.PropertyEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		PropertyID: p.ID,
		Name:       p.Name,
		EventType:  service.EventPropertyUpdated,
		Status:     status.Classify(p, srv.now()).String(),
		OccurredAt: srv.now().UTC(),
	}
	if err := srv.publisher.PublishPropertyEvent(ctx, event); err != nil {
		// Event fan-out is advisory; the write has already landed.
		srv.log(ctx).Warn("failed to publish property event",
			slog.String("property_id", p.ID),
			slog.Any("error", err),
		)
	}
}

// GetProperty returns a single property with its derived status.
func (srv *propertyService) GetProperty(ctx context.Context, viewer *entity.UserProfile, id string) (*usecase.PropertyView, error) {
	p, err := srv.loadVisible(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	return srv.view(p), nil
}

// CreateProperty adds a property shell; contract facts arrive later through
// the wizard or an import.
func (srv *propertyService) CreateProperty(ctx context.Context, viewer *entity.UserProfile, input usecase.CreatePropertyInput) (*usecase.PropertyView, error) {
	if err := requireEditor(viewer); err != nil {
		return nil, err
	}

	p := &entity.Property{
		ID:      uuid.New().String(),
		Name:    input.Name,
		Address: input.Address,
		City:    input.City,
		State:   input.State,
		Zip:     input.Zip,
		Area:    input.Area,
		Region:  input.Region,
		Market:  input.Market,
	}

	if err := srv.propertyRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("property created",
		slog.String("property_id", p.ID),
		slog.String("name", p.Name),
	)
	srv.publishUpdated(ctx, p)

	return srv.view(p), nil
}

// UpdateProperty applies a partial update; only non-nil input fields write.
func (srv *propertyService) UpdateProperty(ctx context.Context, viewer *entity.UserProfile, id string, input usecase.UpdatePropertyInput) (*usecase.PropertyView, error) {
	if err := requireEditor(viewer); err != nil {
		return nil, err
	}
	if _, err := srv.loadVisible(ctx, viewer, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setString := func(path string, v *string) {
		if v != nil {
			fields[path] = *v
		}
	}
	setString("name", input.Name)
	setString("address", input.Address)
	setString("city", input.City)
	setString("state", input.State)
	setString("zip", input.Zip)
	setString("area", input.Area)
	setString("region", input.Region)
	setString("market", input.Market)
	setString("vendor.name", input.VendorName)
	setString("vendor.accountNumber", input.AccountNumber)
	setString("vendor.billingFrequency", input.BillingFrequency)
	if input.UnitCount != nil {
		fields["unitCount"] = *input.UnitCount
	}
	if input.OnNationalContract != nil {
		fields["onNationalContract"] = *input.OnNationalContract
	}
	if input.VendorRating != nil {
		fields["vendor.rating"] = *input.VendorRating
	}
	if input.CurrentPrice != nil {
		fields["vendor.currentPrice"] = *input.CurrentPrice
	}

	if len(fields) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("no fields to update")
	}

	if err := srv.propertyRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	p, err := srv.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	srv.publishUpdated(ctx, p)

	return srv.view(p), nil
}

// DeleteProperty removes a property document.
func (srv *propertyService) DeleteProperty(ctx context.Context, viewer *entity.UserProfile, id string) error {
	if err := requireEditor(viewer); err != nil {
		return err
	}
	p, err := srv.loadVisible(ctx, viewer, id)
	if err != nil {
		return err
	}

	if err := srv.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}

	srv.log(ctx).Info("property deleted", slog.String("property_id", id))

	event := &service.PropertyEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		PropertyID: p.ID,
		Name:       p.Name,
		EventType:  service.EventPropertyRemoved,
		OccurredAt: srv.now().UTC(),
	}
	if err := srv.publisher.PublishPropertyEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("failed to publish property event",
			slog.String("property_id", p.ID),
			slog.Any("error", err),
		)
	}

	return nil
}

// SetManualStatus writes a manual declaration or the pending_review marker.
// Derived states are rejected: they exist only as classifier output.
func (srv *propertyService) SetManualStatus(ctx context.Context, viewer *entity.UserProfile, id string, input usecase.SetStatusInput) (*usecase.PropertyView, error) {
	if err := requireEditor(viewer); err != nil {
		return nil, err
	}

	declared := entity.PropertyStatus(input.Status)
	if !declared.IsValid() {
		return nil, domainerrors.ErrInvalidStatus
	}
	if !declared.IsManualDeclaration() && declared != entity.StatusPendingReview {
		return nil, domainerrors.ErrInvalidStatus.WrapMessage("only manual declarations may be stored")
	}

	p, err := srv.loadVisible(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	previous := status.Classify(p, srv.now())

	now := srv.now().UTC()
	if err := srv.propertyRepo.UpdateFields(ctx, id, map[string]any{
		"status":          declared.String(),
		"statusUpdatedAt": now,
	}); err != nil {
		return nil, err
	}

	p.Status = declared
	p.StatusUpdatedAt = &now

	current := status.Classify(p, srv.now())
	if current != previous {
		event := &service.PropertyEvent{
			RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
			PropertyID:     p.ID,
			Name:           p.Name,
			EventType:      service.EventStatusChanged,
			PreviousStatus: previous.String(),
			Status:         current.String(),
			OccurredAt:     now,
		}
		if err := srv.publisher.PublishPropertyEvent(ctx, event); err != nil {
			srv.log(ctx).Warn("failed to publish status event",
				slog.String("property_id", p.ID),
				slog.Any("error", err),
			)
		}
	}

	return srv.view(p), nil
}

// AddContact appends a contact; a new primary demotes the old one.
func (srv *propertyService) AddContact(ctx context.Context, viewer *entity.UserProfile, propertyID string, input usecase.ContactInput) (*entity.Contact, error) {
	if err := requireEditor(viewer); err != nil {
		return nil, err
	}
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return nil, err
	}

	contact := entity.Contact{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Role:      input.Role,
		Email:     input.Email,
		Phone:     input.Phone,
		IsPrimary: input.IsPrimary,
	}

	if contact.IsPrimary {
		demotePrimary(p.Contacts)
	}
	p.Contacts = append(p.Contacts, contact)

	if err := srv.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	srv.publishUpdated(ctx, p)

	return &contact, nil
}

// UpdateContact replaces a contact's fields; primary uniqueness is preserved.
func (srv *propertyService) UpdateContact(ctx context.Context, viewer *entity.UserProfile, propertyID, contactID string, input usecase.ContactInput) (*entity.Contact, error) {
	if err := requireEditor(viewer); err != nil {
		return nil, err
	}
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range p.Contacts {
		if p.Contacts[i].ID == contactID {
			idx = i

			break
		}
	}
	if idx < 0 {
		return nil, domainerrors.ErrContactNotFound
	}

	if input.IsPrimary {
		demotePrimary(p.Contacts)
	}

	p.Contacts[idx] = entity.Contact{
		ID:        contactID,
		Name:      input.Name,
		Role:      input.Role,
		Email:     input.Email,
		Phone:     input.Phone,
		IsPrimary: input.IsPrimary,
	}

	if err := srv.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	srv.publishUpdated(ctx, p)

	return &p.Contacts[idx], nil
}

// DeleteContact removes a contact from the property.
func (srv *propertyService) DeleteContact(ctx context.Context, viewer *entity.UserProfile, propertyID, contactID string) error {
	if err := requireEditor(viewer); err != nil {
		return err
	}
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return err
	}

	kept := p.Contacts[:0]
	found := false
	for _, c := range p.Contacts {
		if c.ID == contactID {
			found = true

			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return domainerrors.ErrContactNotFound
	}
	p.Contacts = kept

	if err := srv.propertyRepo.Save(ctx, p); err != nil {
		return err
	}
	srv.publishUpdated(ctx, p)

	return nil
}

// AddContract appends a non-elevator service agreement.
func (srv *propertyService) AddContract(ctx context.Context, viewer *entity.UserProfile, propertyID string, input usecase.ContractInput) (*entity.Contract, error) {
	if err := requireEditor(viewer); err != nil {
		return nil, err
	}
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return nil, err
	}

	contract := entity.Contract{
		ID:        uuid.New().String(),
		Category:  input.Category,
		Vendor:    input.Vendor,
		Status:    input.Status,
		Cost:      input.Cost,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Rating:    input.Rating,
	}
	p.Contracts = append(p.Contracts, contract)

	if err := srv.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	srv.publishUpdated(ctx, p)

	return &contract, nil
}

// UpdateContract replaces a contract's fields, keeping its documents.
func (srv *propertyService) UpdateContract(ctx context.Context, viewer *entity.UserProfile, propertyID, contractID string, input usecase.ContractInput) (*entity.Contract, error) {
	if err := requireEditor(viewer); err != nil {
		return nil, err
	}
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range p.Contracts {
		if p.Contracts[i].ID == contractID {
			idx = i

			break
		}
	}
	if idx < 0 {
		return nil, domainerrors.ErrContractNotFound
	}

	documents := p.Contracts[idx].Documents
	p.Contracts[idx] = entity.Contract{
		ID:        contractID,
		Category:  input.Category,
		Vendor:    input.Vendor,
		Status:    input.Status,
		Cost:      input.Cost,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Rating:    input.Rating,
		Documents: documents,
	}

	if err := srv.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	srv.publishUpdated(ctx, p)

	return &p.Contracts[idx], nil
}

// DeleteContract removes a service agreement from the property.
func (srv *propertyService) DeleteContract(ctx context.Context, viewer *entity.UserProfile, propertyID, contractID string) error {
	if err := requireEditor(viewer); err != nil {
		return err
	}
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return err
	}

	kept := p.Contracts[:0]
	found := false
	for _, c := range p.Contracts {
		if c.ID == contractID {
			found = true

			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return domainerrors.ErrContractNotFound
	}
	p.Contracts = kept

	if err := srv.propertyRepo.Save(ctx, p); err != nil {
		return err
	}
	srv.publishUpdated(ctx, p)

	return nil
}

// GeneratePropertyTag renders the machine-room QR label for a property.
func (srv *propertyService) GeneratePropertyTag(ctx context.Context, viewer *entity.UserProfile, id string) ([]byte, error) {
	if _, err := srv.loadVisible(ctx, viewer, id); err != nil {
		return nil, err
	}

	return srv.qrService.GeneratePropertyTag(id)
}

func demotePrimary(contacts []entity.Contact) {
	for i := range contacts {
		contacts[i].IsPrimary = false
	}
}
