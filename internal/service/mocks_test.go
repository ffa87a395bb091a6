package service

import (
	"context"
	"time"

	"petmarket-service/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) GetBuyerByID(ctx context.Context, id string) (*models.Buyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Buyer), args.Error(1)
}

func (m *mockBookingStore) CreateBookingTx(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingStore) TransitionBookingTx(ctx context.Context, bookingID, toStatus string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, toStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingStore) ListBookingsBySeller(ctx context.Context, sellerID string) ([]models.BookingDetail, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookingDetail), args.Error(1)
}

type mockAppointmentStore struct {
	mock.Mock
}

func (m *mockAppointmentStore) GetVetByID(ctx context.Context, id string) (*models.Vet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vet), args.Error(1)
}

func (m *mockAppointmentStore) GetVetServiceByID(ctx context.Context, id string) (*models.VetService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VetService), args.Error(1)
}

func (m *mockAppointmentStore) HasAppointmentConflict(ctx context.Context, vetID string, appointmentTime time.Time) (bool, error) {
	args := m.Called(ctx, vetID, appointmentTime)
	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentStore) CreateServiceBookingTx(ctx context.Context, sb *models.ServiceBooking) error {
	args := m.Called(ctx, sb)
	return args.Error(0)
}

func (m *mockAppointmentStore) GetServiceBookingByID(ctx context.Context, id string) (*models.ServiceBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceBooking), args.Error(1)
}

func (m *mockAppointmentStore) UpdateServiceBookingStatus(ctx context.Context, id, status, declineReason string) (*models.ServiceBooking, error) {
	args := m.Called(ctx, id, status, declineReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceBooking), args.Error(1)
}

func (m *mockAppointmentStore) DeleteServiceBookingTx(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAppointmentStore) ListAppointmentsByVet(ctx context.Context, vetID string) ([]models.AppointmentDetail, error) {
	args := m.Called(ctx, vetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppointmentDetail), args.Error(1)
}

func (m *mockAppointmentStore) ListAppointmentsByBuyer(ctx context.Context, buyerID string) ([]models.AppointmentDetail, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppointmentDetail), args.Error(1)
}

func (m *mockAppointmentStore) ListAppointmentsBySeller(ctx context.Context, sellerID string) ([]models.AppointmentDetail, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppointmentDetail), args.Error(1)
}

type mockCatalogStore struct {
	mock.Mock
}

func (m *mockCatalogStore) GetSellerByID(ctx context.Context, id string) (*models.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seller), args.Error(1)
}

func (m *mockCatalogStore) ListPetsBySeller(ctx context.Context, sellerID string) ([]models.Pet, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pet), args.Error(1)
}

func (m *mockCatalogStore) CreatePet(ctx context.Context, pet *models.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *mockCatalogStore) GetPetByID(ctx context.Context, id string) (*models.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *mockCatalogStore) ListAvailablePets(ctx context.Context) ([]models.Pet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pet), args.Error(1)
}

func (m *mockCatalogStore) ListVetServices(ctx context.Context, vetID string) ([]models.VetService, error) {
	args := m.Called(ctx, vetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VetService), args.Error(1)
}

// fakeCache is a nop pet listing cache that records invalidations
type fakeCache struct {
	pets          []models.Pet
	warm          bool
	setCalls      int
	invalidations int
}

func (f *fakeCache) GetAvailablePets(context.Context) ([]models.Pet, bool, error) {
	return f.pets, f.warm, nil
}

func (f *fakeCache) SetAvailablePets(_ context.Context, pets []models.Pet) error {
	f.pets = pets
	f.warm = true
	f.setCalls++
	return nil
}

func (f *fakeCache) InvalidateAvailablePets(context.Context) error {
	f.warm = false
	f.invalidations++
	return nil
}

// fakeSlots mimics the Redis SETNX holds: a held slot stays denied until it
// is released. deny refuses every hold outright.
type fakeSlots struct {
	deny     bool
	holds    int
	releases int
	held     map[string]bool
}

func slotMapKey(vetID string, at time.Time) string {
	return vetID + "|" + at.UTC().Format(time.RFC3339)
}

func (f *fakeSlots) HoldSlot(_ context.Context, vetID string, at time.Time) (bool, error) {
	f.holds++
	if f.deny {
		return false, nil
	}
	key := slotMapKey(vetID, at)
	if f.held[key] {
		return false, nil
	}
	if f.held == nil {
		f.held = make(map[string]bool)
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeSlots) ReleaseSlot(_ context.Context, vetID string, at time.Time) error {
	f.releases++
	delete(f.held, slotMapKey(vetID, at))
	return nil
}

// fakePublisher records published lifecycle events
type fakePublisher struct {
	bookingEvents     []string
	appointmentEvents []string
}

func (f *fakePublisher) PublishBookingEvent(_ context.Context, eventType string, _ *models.Booking) error {
	f.bookingEvents = append(f.bookingEvents, eventType)
	return nil
}

func (f *fakePublisher) PublishAppointmentEvent(_ context.Context, eventType string, _ *models.ServiceBooking) error {
	f.appointmentEvents = append(f.appointmentEvents, eventType)
	return nil
}
