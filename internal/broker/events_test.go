package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"petmarket-service/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedEvent struct {
	key   string
	event interface{}
}

type fakeSink struct {
	published []capturedEvent
}

func (f *fakeSink) PublishEvent(_ context.Context, key string, event interface{}) error {
	f.published = append(f.published, capturedEvent{key: key, event: event})
	return nil
}

func TestPublishBookingEvent(t *testing.T) {
	sink := &fakeSink{}
	publisher := NewEventPublisher(sink)

	booking := &models.Booking{
		ID:      "bk-1",
		PetID:   "pet-1",
		BuyerID: "buyer-1",
		Status:  models.BookingStatusAccepted,
	}

	err := publisher.PublishBookingEvent(context.Background(), models.EventTypeBookingAccepted, booking)
	require.NoError(t, err)
	require.Len(t, sink.published, 1)

	assert.Equal(t, "booking-bk-1", sink.published[0].key)

	event, ok := sink.published[0].event.(*models.BookingEvent)
	require.True(t, ok)
	assert.Equal(t, models.EventTypeBookingAccepted, event.EventType)
	assert.Equal(t, "bk-1", event.BookingID)
	assert.Equal(t, "pet-1", event.PetID)
	assert.Equal(t, models.BookingStatusAccepted, event.Status)
	assert.NotEmpty(t, event.EventID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestPublishAppointmentEvent_ResolvesRequester(t *testing.T) {
	buyerID := "buyer-7"
	sellerID := "seller-3"

	cases := []struct {
		name         string
		booking      models.ServiceBooking
		expectedID   string
		expectedRole string
	}{
		{
			name:         "buyer requester",
			booking:      models.ServiceBooking{ID: "sb-1", VetID: "vet-1", BuyerID: &buyerID},
			expectedID:   buyerID,
			expectedRole: models.BookerRoleBuyer,
		},
		{
			name:         "seller requester",
			booking:      models.ServiceBooking{ID: "sb-2", VetID: "vet-1", SellerID: &sellerID},
			expectedID:   sellerID,
			expectedRole: models.BookerRoleSeller,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &fakeSink{}
			publisher := NewEventPublisher(sink)

			err := publisher.PublishAppointmentEvent(context.Background(), models.EventTypeAppointmentRequested, &tc.booking)
			require.NoError(t, err)
			require.Len(t, sink.published, 1)

			event, ok := sink.published[0].event.(*models.AppointmentEvent)
			require.True(t, ok)
			assert.Equal(t, tc.expectedID, event.RequesterID)
			assert.Equal(t, tc.expectedRole, event.RequesterRole)
		})
	}
}

func TestEventHandler_RoutesByType(t *testing.T) {
	handler := NewEventHandler()

	var gotBooking *models.BookingEvent
	var gotAppointment *models.AppointmentEvent
	handler.OnBookingEvent(func(_ context.Context, e *models.BookingEvent) error {
		gotBooking = e
		return nil
	})
	handler.OnAppointmentEvent(func(_ context.Context, e *models.AppointmentEvent) error {
		gotAppointment = e
		return nil
	})

	bookingPayload, err := json.Marshal(models.BookingEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "ev-1",
			EventType: models.EventTypeBookingRequested,
			Timestamp: time.Now(),
		},
		BookingID: "bk-1",
	})
	require.NoError(t, err)

	err = handler.HandleMessage(context.Background(), kafka.Message{Value: bookingPayload})
	require.NoError(t, err)
	require.NotNil(t, gotBooking)
	assert.Equal(t, "bk-1", gotBooking.BookingID)
	assert.Nil(t, gotAppointment)

	appointmentPayload, err := json.Marshal(models.AppointmentEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "ev-2",
			EventType: models.EventTypeAppointmentDeclined,
			Timestamp: time.Now(),
		},
		AppointmentID: "sb-1",
		DeclineReason: "fully booked",
	})
	require.NoError(t, err)

	err = handler.HandleMessage(context.Background(), kafka.Message{Value: appointmentPayload})
	require.NoError(t, err)
	require.NotNil(t, gotAppointment)
	assert.Equal(t, "sb-1", gotAppointment.AppointmentID)
	assert.Equal(t, "fully booked", gotAppointment.DeclineReason)
}

func TestEventHandler_UnknownTypeIgnored(t *testing.T) {
	handler := NewEventHandler()
	handler.OnBookingEvent(func(context.Context, *models.BookingEvent) error {
		t.Fatal("handler should not fire for unknown event type")
		return nil
	})

	payload, err := json.Marshal(models.BaseEvent{EventID: "ev-3", EventType: "SOMETHING_ELSE"})
	require.NoError(t, err)

	assert.NoError(t, handler.HandleMessage(context.Background(), kafka.Message{Value: payload}))
}

func TestEventHandler_BadPayload(t *testing.T) {
	handler := NewEventHandler()
	err := handler.HandleMessage(context.Background(), kafka.Message{Value: []byte("{not json")})
	assert.Error(t, err)
}
