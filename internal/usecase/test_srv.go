package usecase

import (
	"context"
	"fmt"

	"covid-booking/internal/data/entity"
	"covid-booking/internal/data/remote"
	"covid-booking/pkg/utils"

	"go.uber.org/zap"
)

type AdministerTestInput struct {
	BookingID      string          `validate:"required"`
	AdministererID string          `validate:"required"`
	Type           entity.TestType `validate:"required,oneof=PCR RAT"`
	Notes          string
}

// TestService administers COVID tests against bookings and drives the
// booking status INITIATED -> PROCESSED -> COMPLETED through the booking
// facade so the status change follows the normal update protocol.
type TestService interface {
	// Administer records a test for the booking and marks it PROCESSED.
	Administer(ctx context.Context, in *AdministerTestInput) (*entity.CovidTest, error)

	// RecordResult finalizes a test and marks its booking COMPLETED.
	RecordResult(ctx context.Context, test *entity.CovidTest, result entity.TestResult) error

	List(ctx context.Context) ([]*entity.CovidTest, error)
}

type testService struct {
	store    remote.TestStore
	bookings BookingService
	log      *zap.Logger
}

func NewTestService(store remote.TestStore, bookings BookingService, log *zap.Logger) TestService {
	return &testService{
		store:    store,
		bookings: bookings,
		log:      log.With(zap.String("service", "covid-test")),
	}
}

func (s *testService) Administer(ctx context.Context, in *AdministerTestInput) (*entity.CovidTest, error) {
	if errs := utils.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking := s.bookings.FindByID(in.BookingID)
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", in.BookingID)
	}
	if !booking.Active() {
		return nil, fmt.Errorf("booking %s already has a test administered", in.BookingID)
	}

	test := &entity.CovidTest{
		Type:           in.Type,
		PatientID:      booking.CustomerID,
		AdministererID: in.AdministererID,
		BookingID:      booking.ID,
		Result:         entity.TestResultPending,
		Status:         entity.TestStatusProcessed,
		Notes:          in.Notes,
	}

	id, err := s.store.Create(ctx, test)
	if err != nil {
		return nil, err
	}
	test.ID = id

	booking.SetStatus(entity.TestStatusProcessed)
	booking.Touch()
	if err := s.bookings.Update(ctx, booking); err != nil {
		s.log.Error("Test recorded but booking status update failed",
			zap.String("test_id", test.ID),
			zap.String("booking_id", booking.ID),
			zap.Error(err),
		)
	}

	s.log.Info("Administered covid test",
		zap.String("test_id", test.ID),
		zap.String("booking_id", booking.ID),
	)
	return test, nil
}

func (s *testService) RecordResult(ctx context.Context, test *entity.CovidTest, result entity.TestResult) error {
	test.Result = result
	test.Status = entity.TestStatusCompleted

	if err := s.store.Replace(ctx, test); err != nil {
		return err
	}

	booking := s.bookings.FindByID(test.BookingID)
	if booking == nil {
		return nil
	}

	booking.SetStatus(entity.TestStatusCompleted)
	booking.Touch()
	return s.bookings.Update(ctx, booking)
}

func (s *testService) List(ctx context.Context) ([]*entity.CovidTest, error) {
	return s.store.List(ctx)
}
