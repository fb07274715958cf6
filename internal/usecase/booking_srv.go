package usecase

import (
	"context"
	"fmt"

	"covid-booking/internal/data/collection"
	"covid-booking/internal/data/entity"
	"covid-booking/internal/data/remote"
	"covid-booking/pkg/utils"

	"go.uber.org/zap"
)

type CreateFacilityBookingInput struct {
	CustomerID    string `validate:"required"`
	TestingSiteID string `validate:"required"`
	StartTime     string `validate:"required"`
	Notes         string
}

type CreateHomeBookingInput struct {
	CustomerID string `validate:"required"`
	StartTime  string `validate:"required"`
	Notes      string
	NeedsKit   bool
}

// BookingService is the single entry point for booking mutations. It keeps
// the local collection consistent with what the record store has
// acknowledged, per operation rules documented on each method.
type BookingService interface {
	// Populate loads the full remote booking collection into the cache.
	Populate(ctx context.Context) error

	CreateFacilityBooking(ctx context.Context, in *CreateFacilityBookingInput) (*entity.Booking, error)
	CreateHomeBooking(ctx context.Context, in *CreateHomeBookingInput) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, booking *entity.Booking) error
	Resync(ctx context.Context, id string) (*entity.Booking, error)

	FindByID(id string) *entity.Booking
	FindByPIN(pin string) *entity.Booking
	FindByField(name, value string) *entity.Booking
	ActiveForCustomer(customerID string) []*entity.Booking
}

type bookingService struct {
	store    remote.BookingStore
	bookings *collection.BookingCollection
	notifier Notifier
	log      *zap.Logger
}

func NewBookingService(
	store remote.BookingStore,
	bookings *collection.BookingCollection,
	notifier Notifier,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		store:    store,
		bookings: bookings,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Populate(ctx context.Context) error {
	remoteBookings, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("populate bookings: %w", err)
	}

	for _, booking := range remoteBookings {
		s.bookings.Add(booking)
	}

	s.log.Info("Populated booking cache", zap.Int("count", len(remoteBookings)))
	return nil
}

// CreateFacilityBooking constructs the booking, pushes it to the record
// store, and only then inserts it locally and notifies site staff. A
// failed remote push aborts the operation with no local mutation.
func (s *bookingService) CreateFacilityBooking(ctx context.Context, in *CreateFacilityBookingInput) (*entity.Booking, error) {
	if errs := utils.ValidateStruct(in); len(errs) > 0 {
		s.log.Warn("Create facility booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking := entity.NewFacilityBooking(in.CustomerID, in.TestingSiteID, in.StartTime)
	booking.Notes = in.Notes

	return s.pushNew(ctx, booking)
}

// CreateHomeBooking follows the same protocol as CreateFacilityBooking;
// home bookings produce no notifications since they have no site.
func (s *bookingService) CreateHomeBooking(ctx context.Context, in *CreateHomeBookingInput) (*entity.Booking, error) {
	if errs := utils.ValidateStruct(in); len(errs) > 0 {
		s.log.Warn("Create home booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking := entity.NewHomeBooking(in.CustomerID, in.StartTime, in.NeedsKit)
	booking.Notes = in.Notes

	return s.pushNew(ctx, booking)
}

func (s *bookingService) pushNew(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	id, err := s.store.Create(ctx, booking)
	if err != nil {
		s.log.Error("Remote create failed, booking discarded",
			zap.String("customer_id", booking.CustomerID),
			zap.Error(err),
		)
		return nil, err
	}

	booking.ID = id
	s.bookings.Add(booking)
	s.notifier.Dispatch(ctx, EventCreated, booking)

	s.log.Info("Created booking",
		zap.String("booking_id", booking.ID),
		zap.String("kind", string(booking.Kind())),
	)
	return booking, nil
}

// Update pushes an already-mutated booking to the record store. The local
// entry is replaced with the caller's state even when the remote push
// failed; the error is still returned so the caller sees the divergence.
func (s *bookingService) Update(ctx context.Context, booking *entity.Booking) error {
	pushErr := s.store.Replace(ctx, booking)
	if pushErr != nil {
		s.log.Error("Remote update failed, local cache keeps caller state",
			zap.String("booking_id", booking.ID),
			zap.Error(pushErr),
		)
	}

	s.notifier.Dispatch(ctx, EventModified, booking)
	s.bookings.Replace(booking.ID, booking)

	return pushErr
}

// Delete notifies site staff first, then attempts the remote delete, and
// removes the local entry regardless of the remote outcome.
func (s *bookingService) Delete(ctx context.Context, booking *entity.Booking) error {
	s.notifier.Dispatch(ctx, EventDeleted, booking)

	deleteErr := s.store.Delete(ctx, booking.ID)
	if deleteErr != nil {
		s.log.Error("Remote delete failed, local entry removed anyway",
			zap.String("booking_id", booking.ID),
			zap.Error(deleteErr),
		)
	}

	s.bookings.RemoveByID(booking.ID)
	return deleteErr
}

// Resync pulls the authoritative record and overwrites the local entry
// unconditionally.
func (s *bookingService) Resync(ctx context.Context, id string) (*entity.Booking, error) {
	booking, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resync booking %s: %w", id, err)
	}

	s.bookings.Replace(id, booking)
	return booking, nil
}

func (s *bookingService) FindByID(id string) *entity.Booking {
	return s.bookings.FindByID(id)
}

func (s *bookingService) FindByPIN(pin string) *entity.Booking {
	return s.bookings.FindByPIN(pin)
}

func (s *bookingService) FindByField(name, value string) *entity.Booking {
	return s.bookings.FindByField(name, value)
}

func (s *bookingService) ActiveForCustomer(customerID string) []*entity.Booking {
	return s.bookings.ActiveForCustomer(customerID)
}
