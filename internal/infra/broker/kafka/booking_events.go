package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"stayseek/internal/domain/availability"
	"stayseek/internal/domain/property"
)

const (
	EventBookingCreated  = "booking.created"
	EventBookingCanceled = "booking.canceled"
)

// bookingEvent is the JSON envelope published by the booking subsystem.
type bookingEvent struct {
	Type       string `json:"type"`
	BookingID  int64  `json:"booking_id"`
	PropertyID int64  `json:"property_id"`
	RoomID     int64  `json:"room_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status"`
}

// BookingEventsHandler applies booking lifecycle events to the property store.
type BookingEventsHandler struct {
	Sink   property.BookingSink
	Logger *slog.Logger
}

func (h BookingEventsHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event bookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// malformed payloads are logged and skipped, never retried
		if h.Logger != nil {
			h.Logger.Warn("booking event decode failed", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		}
		return nil
	}
	switch event.Type {
	case EventBookingCreated:
		return h.applyCreated(ctx, event)
	case EventBookingCanceled:
		return h.applyCanceled(ctx, event)
	default:
		if h.Logger != nil {
			h.Logger.Debug("booking event ignored", "type", event.Type, "offset", msg.Offset)
		}
		return nil
	}
}

func (h BookingEventsHandler) applyCreated(ctx context.Context, event bookingEvent) error {
	checkIn, err := parseEventDay(event.CheckIn)
	if err != nil {
		return h.skip("check_in", event, err)
	}
	checkOut, err := parseEventDay(event.CheckOut)
	if err != nil {
		return h.skip("check_out", event, err)
	}
	status := availability.BookingStatus(event.Status)
	if status == "" {
		status = availability.BookingConfirmed
	}
	err = h.Sink.RecordBooking(ctx, property.PropertyID(event.PropertyID), property.RoomID(event.RoomID), availability.Booking{
		ID:       event.BookingID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   status,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("booking event apply failed", "booking", event.BookingID, "error", err)
		}
		return err
	}
	if h.Logger != nil {
		h.Logger.Info("booking recorded", "booking", event.BookingID, "property", event.PropertyID, "room", event.RoomID)
	}
	return nil
}

func (h BookingEventsHandler) applyCanceled(ctx context.Context, event bookingEvent) error {
	err := h.Sink.CancelBooking(ctx, property.PropertyID(event.PropertyID), property.RoomID(event.RoomID), event.BookingID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("booking cancel apply failed", "booking", event.BookingID, "error", err)
		}
		return err
	}
	if h.Logger != nil {
		h.Logger.Info("booking canceled", "booking", event.BookingID, "property", event.PropertyID, "room", event.RoomID)
	}
	return nil
}

func (h BookingEventsHandler) skip(field string, event bookingEvent, err error) error {
	if h.Logger != nil {
		h.Logger.Warn("booking event skipped", "booking", event.BookingID, "field", field, "error", err)
	}
	return nil
}

func parseEventDay(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("kafka: unparsable date %q", raw)
}

var _ MessageHandler = BookingEventsHandler{}
