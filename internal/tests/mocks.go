package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/redis"
	"github.com/nasmaklabs/chauffeur-sub000/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32
	DeleteCallCount       int32

	// Error injection
	CreateError       error
	GetError          error
	ListError         error
	UpdateStatusError error
	DeleteError       error
	CountError        error

	// DuplicateFirstN makes the first N Create calls fail with
	// ErrDuplicateReference, simulating the unique constraint firing.
	DuplicateFirstN int32
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	call := atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	if call <= atomic.LoadInt32(&m.DuplicateFirstN) {
		return repository.ErrDuplicateReference
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.Reference == booking.Reference {
			return repository.ErrDuplicateReference
		}
	}
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if b.Reference == reference {
			copy := *b
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockBookingRepository) List(ctx context.Context, filter repository.BookingListFilter) ([]*domain.Booking, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		copy := *b
		all = append(all, &copy)
	}
	// Newest first, id as tiebreaker, matching the SQL ordering.
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	start := 0
	if filter.Cursor != "" {
		for i, b := range all {
			if b.ID == filter.Cursor {
				start = i + 1
				break
			}
		}
	}
	if start >= len(all) {
		return nil, nil
	}
	end := len(all)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return all[start:end], nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	booking.Status = status
	booking.UpdatedAt = updatedAt
	return nil
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, b := range m.bookings {
		if status == "" || b.Status == status {
			count++
		}
	}
	return count, nil
}

// GetBooking returns a stored booking for test assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// Len returns the number of stored bookings.
func (m *MockBookingRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

// ──────────────────────────────────────────────
// MOCK ADMIN USER REPOSITORY
// ──────────────────────────────────────────────

// MockAdminUserRepository is a mock implementation of AdminUserRepository.
type MockAdminUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.AdminUser

	CreateCallCount int32

	CreateError error
	GetError    error
}

// NewMockAdminUserRepository creates a new mock admin user repository.
func NewMockAdminUserRepository() *MockAdminUserRepository {
	return &MockAdminUserRepository{
		users: make(map[string]*domain.AdminUser),
	}
}

func (m *MockAdminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockAdminUserRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockAdminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockAdminUserRepository) GetAll(ctx context.Context) ([]*domain.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.AdminUser, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockAdminUserRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// MockNotifier records booking notifications.
type MockNotifier struct {
	mu sync.Mutex

	CreatedCallCount       int32
	StatusChangedCallCount int32

	CreatedError       error
	StatusChangedError error

	CreatedBookings []string              // references, in order
	StatusChanges   []domain.BookingStatus // new statuses, in order
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreatedCallCount, 1)
	if m.CreatedError != nil {
		return m.CreatedError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatedBookings = append(m.CreatedBookings, booking.Reference)
	return nil
}

func (m *MockNotifier) BookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) error {
	atomic.AddInt32(&m.StatusChangedCallCount, 1)
	if m.StatusChangedError != nil {
		return m.StatusChangedError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusChanges = append(m.StatusChanges, booking.Status)
	return nil
}

// ──────────────────────────────────────────────
// MOCK DISTANCE PROVIDER
// ──────────────────────────────────────────────

// MockDistanceProvider returns a fixed distance.
type MockDistanceProvider struct {
	Distance  float64
	Err       error
	CallCount int32
}

func (m *MockDistanceProvider) DistanceBetween(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	atomic.AddInt32(&m.CallCount, 1)
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Distance, nil
}

// ──────────────────────────────────────────────
// MOCK QUOTE CACHE
// ──────────────────────────────────────────────

// MockQuoteCache is an in-memory quote cache.
type MockQuoteCache struct {
	mu     sync.RWMutex
	quotes map[string]*redis.CachedQuote

	GetCallCount int32
	SetCallCount int32

	GetError error
	SetError error
}

// NewMockQuoteCache creates a new mock quote cache.
func NewMockQuoteCache() *MockQuoteCache {
	return &MockQuoteCache{
		quotes: make(map[string]*redis.CachedQuote),
	}
}

func (m *MockQuoteCache) Get(ctx context.Context, key string) (*redis.CachedQuote, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	quote, ok := m.quotes[key]
	if !ok {
		return nil, nil
	}
	copy := *quote
	return &copy, nil
}

func (m *MockQuoteCache) Set(ctx context.Context, key string, quote *redis.CachedQuote) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *quote
	m.quotes[key] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK DISTANCE CACHE
// ──────────────────────────────────────────────

// MockDistanceCache is an in-memory distance cache.
type MockDistanceCache struct {
	mu        sync.RWMutex
	distances map[[4]float64]float64

	GetCallCount int32
	SetCallCount int32
}

// NewMockDistanceCache creates a new mock distance cache.
func NewMockDistanceCache() *MockDistanceCache {
	return &MockDistanceCache{
		distances: make(map[[4]float64]float64),
	}
}

func (m *MockDistanceCache) Get(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (float64, bool, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	miles, ok := m.distances[[4]float64{fromLat, fromLng, toLat, toLng}]
	return miles, ok, nil
}

func (m *MockDistanceCache) Set(ctx context.Context, fromLat, fromLng, toLat, toLng, miles float64) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.distances[[4]float64{fromLat, fromLng, toLat, toLng}] = miles
	return nil
}
