package impl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"vendorwatch/internal/domain/entity"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/domain/service"
)

// --- in-memory repository fakes ---

type fakePropertyRepo struct {
	mu         sync.Mutex
	properties map[string]*entity.Property
	failSave   error
}

func newFakePropertyRepo(properties ...*entity.Property) *fakePropertyRepo {
	repo := &fakePropertyRepo{properties: make(map[string]*entity.Property)}
	for _, p := range properties {
		repo.properties[p.ID] = clone(p)
	}

	return repo
}

func clone(p *entity.Property) *entity.Property {
	cp := *p
	cp.Contacts = append([]entity.Contact(nil), p.Contacts...)
	cp.Documents = append([]entity.PropertyDocument(nil), p.Documents...)
	cp.Contracts = append([]entity.Contract(nil), p.Contracts...)

	return &cp
}

func (r *fakePropertyRepo) FindByID(_ context.Context, id string) (*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.properties[id]
	if !ok {
		return nil, repository.ErrPropertyNotFound
	}

	return clone(p), nil
}

func (r *fakePropertyRepo) FindAll(_ context.Context) ([]*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*entity.Property, 0, len(r.properties))
	for _, p := range r.properties {
		all = append(all, clone(p))
	}

	return all, nil
}

func (r *fakePropertyRepo) Create(_ context.Context, p *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.properties[p.ID] = clone(p)

	return nil
}

func (r *fakePropertyRepo) Save(_ context.Context, p *entity.Property) error {
	if r.failSave != nil {
		return r.failSave
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.properties[p.ID] = clone(p)

	return nil
}

func (r *fakePropertyRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.properties[id]
	if !ok {
		return repository.ErrPropertyNotFound
	}

	for path, value := range fields {
		applyField(p, path, value)
	}

	return nil
}

// applyField mirrors the dot-path updates the services issue. Only the paths
// used in tests are supported.
func applyField(p *entity.Property, path string, value any) {
	switch path {
	case "name":
		p.Name = value.(string)
	case "region":
		p.Region = value.(string)
	case "unitCount":
		p.UnitCount = value.(int)
	case "onNationalContract":
		p.OnNationalContract = value.(bool)
	case "vendor.name":
		p.Vendor.Name = value.(string)
	case "vendor.rating":
		p.Vendor.Rating = value.(int)
	case "vendor.currentPrice":
		p.Vendor.CurrentPrice = value.(float64)
	case "status":
		p.Status = entity.PropertyStatus(value.(string))
	case "statusUpdatedAt":
		t := value.(time.Time)
		p.StatusUpdatedAt = &t
	}
}

func (r *fakePropertyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[id]; !ok {
		return repository.ErrPropertyNotFound
	}
	delete(r.properties, id)

	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.UserProfile
}

func newFakeUserRepo(users ...*entity.UserProfile) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.UserProfile)}
	for _, u := range users {
		cp := *u
		repo.users[u.Key()] = &cp
	}

	return repo
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u

	return &cp, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*entity.UserProfile, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		all = append(all, &cp)
	}

	return all, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, profile *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *profile
	r.users[profile.Key()] = &cp

	return nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, email string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return repository.ErrUserNotFound
	}

	for path, value := range fields {
		switch path {
		case "role":
			u.Role = entity.Role(value.(string))
		case "lastLogin":
			t := value.(time.Time)
			u.LastLogin = &t
		}
	}

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(email))
	if _, ok := r.users[key]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, key)

	return nil
}

type fakeImporter struct {
	mu      sync.Mutex
	batches []*repository.ImportBatch
	cleared int
	fail    error
}

func (f *fakeImporter) ImportBatch(_ context.Context, batch *repository.ImportBatch) (int, error) {
	if f.fail != nil {
		return 0, f.fail
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, batch)

	return len(batch.Properties) + len(batch.Users), nil
}

func (f *fakeImporter) ClearAll(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++

	return 7, nil
}

type fakeUserWatcher struct {
	ch chan *entity.UserProfile
}

func (f *fakeUserWatcher) Watch(_ context.Context, _ string) (<-chan *entity.UserProfile, error) {
	return f.ch, nil
}

// --- service fakes ---

type fakePublisher struct {
	mu     sync.Mutex
	events []*service.PropertyEvent
}

func (f *fakePublisher) PublishPropertyEvent(_ context.Context, event *service.PropertyEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.EventType)
	}

	return types
}

type fakeStorage struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	failWith error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, path, _ string, data []byte) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[path] = data

	return "https://files.test/" + path, nil
}

func (f *fakeStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.blobs[path]
	if !ok {
		return nil, fmt.Errorf("blob %s not found", path)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, path)

	return nil
}

type fakeQRService struct{}

func (fakeQRService) GeneratePropertyTag(propertyID string) ([]byte, error) {
	return []byte("png:" + propertyID), nil
}

func (fakeQRService) ParsePropertyTag(qrData string) (string, error) {
	return strings.TrimPrefix(qrData, "png:"), nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

type fakeTokenService struct{}

func (fakeTokenService) GenerateTokens(email, role string) (string, string, error) {
	return "access:" + email, "refresh:" + email + ":" + role, nil
}

func (fakeTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	parts := strings.SplitN(tokenString, ":", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("malformed token")
	}

	claims := &service.Claims{Email: parts[1], Type: parts[0]}
	if len(parts) == 3 {
		claims.Role = parts[2]
	}

	return claims, nil
}

func (fakeTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }

// --- common test fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminViewer() *entity.UserProfile {
	return &entity.UserProfile{Email: "admin@example.com", Role: entity.RoleAdmin}
}

func pmViewer() *entity.UserProfile {
	return &entity.UserProfile{
		Email: "pm@example.com",
		Role:  entity.RolePM,
		Scope: &entity.AccessScope{Type: entity.ScopeTypePortfolio},
	}
}

func readonlyViewer() *entity.UserProfile {
	return &entity.UserProfile{Email: "viewer@example.com", Role: entity.RoleUser}
}

// completeProperty returns a fully-populated property whose contract ends
// the given number of days from now.
func completeProperty(id string, daysToEnd int) *entity.Property {
	end := time.Now().AddDate(0, 0, daysToEnd)

	return &entity.Property{
		ID:        id,
		Name:      "Building " + id,
		Address:   "12 Shore Dr",
		City:      "Austin",
		State:     "TX",
		Zip:       "78701",
		Area:      "East",
		Region:    "Southeast",
		Market:    "Austin",
		UnitCount: 4,
		Vendor: entity.Vendor{
			Name:         "Otis",
			CurrentPrice: 1250,
		},
		Terms: entity.ContractTerms{
			EndDate:            end.Format("2006-01-02"),
			CancellationWindow: "120 - 90 Days",
		},
	}
}
