package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"covid-booking/internal/data/entity"

	"go.uber.org/zap"
)

const bookingPath = "/booking"

// BookingStore is the record store's booking collection.
type BookingStore interface {
	List(ctx context.Context) ([]*entity.Booking, error)
	Get(ctx context.Context, id string) (*entity.Booking, error)
	// Create pushes a new booking and returns the id the store assigned.
	Create(ctx context.Context, booking *entity.Booking) (string, error)
	Replace(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id string) error
}

type bookingStore struct {
	client *Client
	log    *zap.Logger
}

func NewBookingStore(client *Client, log *zap.Logger) BookingStore {
	return &bookingStore{
		client: client,
		log:    log.With(zap.String("store", "booking")),
	}
}

func (s *bookingStore) List(ctx context.Context) ([]*entity.Booking, error) {
	docs, err := s.client.list(ctx, bookingPath)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookings := make([]*entity.Booking, 0, len(docs))
	for _, doc := range docs {
		booking, err := decodeBooking(doc)
		if err != nil {
			s.log.Warn("Skipping malformed booking record", zap.Error(err))
			continue
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (s *bookingStore) Get(ctx context.Context, id string) (*entity.Booking, error) {
	doc, err := s.client.get(ctx, bookingPath+"/"+id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}
	return decodeBooking(doc)
}

func (s *bookingStore) Create(ctx context.Context, booking *entity.Booking) (string, error) {
	doc, err := s.client.create(ctx, bookingPath, booking.ToPayload())
	if err != nil {
		return "", fmt.Errorf("create booking: %w", err)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(doc, &created); err != nil || created.ID == "" {
		return "", fmt.Errorf("create booking: store returned no id")
	}
	return created.ID, nil
}

func (s *bookingStore) Replace(ctx context.Context, booking *entity.Booking) error {
	if err := s.client.replace(ctx, bookingPath+"/"+booking.ID, booking.ToPayload()); err != nil {
		return fmt.Errorf("replace booking %s: %w", booking.ID, err)
	}
	return nil
}

func (s *bookingStore) Delete(ctx context.Context, id string) error {
	if err := s.client.delete(ctx, bookingPath+"/"+id); err != nil {
		return fmt.Errorf("delete booking %s: %w", id, err)
	}
	return nil
}

func decodeBooking(doc json.RawMessage) (*entity.Booking, error) {
	var payload entity.BookingPayload
	if err := json.Unmarshal(doc, &payload); err != nil {
		return nil, fmt.Errorf("decode booking record: %w", err)
	}
	return entity.BookingFromPayload(&payload), nil
}
