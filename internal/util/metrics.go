package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pet_bookings_created_total",
		Help: "Total number of pet bookings created",
	})

	BookingsConflictTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pet_bookings_conflict_total",
		Help: "Total number of pet booking attempts rejected because the pet was already booked",
	})

	BookingTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pet_booking_transitions_total",
		Help: "Total number of pet booking status transitions",
	}, []string{"status"})

	AppointmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appointments_created_total",
		Help: "Total number of vet appointments created",
	})

	AppointmentsConflictTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appointments_conflict_total",
		Help: "Total number of appointment attempts rejected for a clashing time slot",
	})

	AppointmentTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appointment_transitions_total",
		Help: "Total number of appointment status transitions",
	}, []string{"status"})

	AppointmentsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appointments_deleted_total",
		Help: "Total number of declined appointments deleted",
	})

	PetCacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pet_listing_cache_requests_total",
		Help: "Pet listing cache lookups by outcome",
	}, []string{"outcome"})

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Total number of notifications dispatched by event type",
	}, []string{"event_type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
