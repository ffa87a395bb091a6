package worker

import (
	"context"

	"petmarket-service/internal/broker"
	"petmarket-service/internal/models"
	"petmarket-service/internal/util"

	"go.uber.org/zap"
)

// ProcessedEventStore tracks handled event IDs so redelivered messages are
// not notified twice
type ProcessedEventStore interface {
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID, eventType string) error
}

// Notifier delivers a booking lifecycle notification to the affected party.
// Email and push delivery live outside this service; the default
// implementation logs.
type Notifier interface {
	NotifyBooking(ctx context.Context, event *models.BookingEvent) error
	NotifyAppointment(ctx context.Context, event *models.AppointmentEvent) error
}

// LogNotifier writes notifications to the service log
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: util.GetLogger()}
}

func (n *LogNotifier) NotifyBooking(_ context.Context, event *models.BookingEvent) error {
	n.logger.Info("Booking notification",
		zap.String("event_type", event.EventType),
		zap.String("booking_id", event.BookingID),
		zap.String("pet_id", event.PetID),
		zap.String("buyer_id", event.BuyerID))
	return nil
}

func (n *LogNotifier) NotifyAppointment(_ context.Context, event *models.AppointmentEvent) error {
	n.logger.Info("Appointment notification",
		zap.String("event_type", event.EventType),
		zap.String("appointment_id", event.AppointmentID),
		zap.String("vet_id", event.VetID),
		zap.String("requester_id", event.RequesterID))
	return nil
}

// NotificationWorker consumes booking lifecycle events and dispatches
// notifications
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, store ProcessedEventStore, notifier Notifier) *NotificationWorker {
	logger := util.GetLogger()
	eventHandler := broker.NewEventHandler()

	eventHandler.OnBookingEvent(func(ctx context.Context, event *models.BookingEvent) error {
		return handleOnce(ctx, store, &event.BaseEvent, func() error {
			if err := notifier.NotifyBooking(ctx, event); err != nil {
				return err
			}
			util.NotificationsSentTotal.WithLabelValues(event.EventType).Inc()
			return nil
		})
	})

	eventHandler.OnAppointmentEvent(func(ctx context.Context, event *models.AppointmentEvent) error {
		return handleOnce(ctx, store, &event.BaseEvent, func() error {
			if err := notifier.NotifyAppointment(ctx, event); err != nil {
				return err
			}
			util.NotificationsSentTotal.WithLabelValues(event.EventType).Inc()
			return nil
		})
	})

	return &NotificationWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		logger:       logger,
	}
}

func handleOnce(ctx context.Context, store ProcessedEventStore, base *models.BaseEvent, handle func() error) error {
	processed, err := store.IsEventProcessed(ctx, base.EventID)
	if err != nil {
		return err
	}
	if processed {
		return nil
	}

	if err := handle(); err != nil {
		return err
	}

	return store.MarkEventProcessed(ctx, base.EventID, base.EventType)
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	w.logger.Info("Stopping notification worker")
	return w.consumer.Close()
}
