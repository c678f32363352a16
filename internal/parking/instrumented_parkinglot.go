package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type InstrumentedParkingLot struct {
	lot    ParkingLot
	tracer trace.Tracer

	// Metrics
	parkingOperations metric.Int64Counter
	leavingOperations metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	operationDuration metric.Float64Histogram
	totalSlotsGauge   metric.Int64UpDownCounter
}

func NewInstrumentedParkingLot(tracer trace.Tracer, meter metric.Meter) (*InstrumentedParkingLot, error) {
	parkingOperations, err := meter.Int64Counter("parking_operations_total",
		metric.WithDescription("Total number of parking operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	leavingOperations, err := meter.Int64Counter("leaving_operations_total",
		metric.WithDescription("Total number of leaving operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of occupied parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSlotsGauge, err := meter.Int64UpDownCounter("parking_lot_total_slots",
		metric.WithDescription("Total number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	return &InstrumentedParkingLot{
		tracer:            tracer,
		parkingOperations: parkingOperations,
		leavingOperations: leavingOperations,
		occupancyGauge:    occupancyGauge,
		operationDuration: operationDuration,
		totalSlotsGauge:   totalSlotsGauge,
	}, nil
}

// Lot exposes the underlying engine for read-only inspection.
func (ipl *InstrumentedParkingLot) Lot() *ParkingLot {
	return &ipl.lot
}

func (ipl *InstrumentedParkingLot) record(ctx context.Context, start time.Time, labels ...attribute.KeyValue) {
	ipl.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (ipl *InstrumentedParkingLot) Create(ctx context.Context, capacity int) error {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.create",
		trace.WithAttributes(attribute.Int("parking_lot.capacity", capacity)))
	defer span.End()

	start := time.Now()
	previousCapacity, previousOccupied := ipl.lot.Capacity(), ipl.lot.Occupied()

	err := ipl.lot.Create(capacity)
	if err != nil {
		failSpan(span, err)
		ipl.record(ctx, start, attribute.String("operation", "create"), attribute.String("status", "failed"))
		return err
	}

	ipl.totalSlotsGauge.Add(ctx, int64(capacity-previousCapacity))
	if previousOccupied > 0 {
		ipl.occupancyGauge.Add(ctx, int64(-previousOccupied))
	}
	span.AddEvent("parking_lot_created")
	ipl.record(ctx, start, attribute.String("operation", "create"), attribute.String("status", "success"))
	return nil
}

func (ipl *InstrumentedParkingLot) Available(ctx context.Context) (int, error) {
	_, span := ipl.tracer.Start(ctx, "parking_lot.available")
	defer span.End()

	available, err := ipl.lot.Available()
	if err != nil {
		failSpan(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int("available_slots", available))
	return available, nil
}

func (ipl *InstrumentedParkingLot) Park(ctx context.Context, registrationNumber, colour string) (int, bool, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.park",
		trace.WithAttributes(
			attribute.String("vehicle.registration_number", registrationNumber),
			attribute.String("vehicle.colour", colour),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("finding_available_slot")

	slotNumber, ok, err := ipl.lot.Park(registrationNumber, colour)

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_colour", colour),
	}

	switch {
	case err != nil:
		failSpan(span, err)
		labels = append(labels, attribute.String("status", "failed"))
	case !ok:
		span.AddEvent("parking_lot_full")
		labels = append(labels, attribute.String("status", "full"))
	default:
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(attribute.Int("allocated_slot_number", slotNumber))
		span.AddEvent("slot_allocated", trace.WithAttributes(
			attribute.Int("slot_number", slotNumber),
		))
		ipl.occupancyGauge.Add(ctx, 1)
	}

	ipl.parkingOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.record(ctx, start, labels...)

	return slotNumber, ok, err
}

func (ipl *InstrumentedParkingLot) Leave(ctx context.Context, slotNumber int) (Vehicle, bool, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.leave",
		trace.WithAttributes(
			attribute.Int("slot_number", slotNumber),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("releasing_slot")

	vehicle, ok, err := ipl.lot.Leave(slotNumber)

	labels := []attribute.KeyValue{
		attribute.String("operation", "leave"),
	}

	switch {
	case err != nil:
		failSpan(span, err)
		labels = append(labels, attribute.String("status", "failed"))
	case !ok:
		span.AddEvent("slot_already_empty")
		labels = append(labels, attribute.String("status", "noop"))
	default:
		span.SetAttributes(
			attribute.String("vehicle.registration_number", vehicle.RegistrationNumber),
			attribute.String("vehicle.colour", vehicle.Colour),
		)
		span.AddEvent("slot_released")
		labels = append(labels,
			attribute.String("vehicle_colour", vehicle.Colour),
			attribute.String("status", "success"),
		)
		ipl.occupancyGauge.Add(ctx, -1)
	}

	ipl.leavingOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.record(ctx, start, labels...)

	return vehicle, ok, err
}

func (ipl *InstrumentedParkingLot) Status(ctx context.Context) ([]Occupancy, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.get_status")
	defer span.End()

	start := time.Now()

	occupied, err := ipl.lot.Status()
	if err != nil {
		failSpan(span, err)
		ipl.record(ctx, start, attribute.String("operation", "get_status"), attribute.String("status", "failed"))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("occupied_slots_count", len(occupied)),
		attribute.Int("total_capacity", ipl.lot.Capacity()),
	)
	ipl.record(ctx, start, attribute.String("operation", "get_status"), attribute.String("status", "success"))

	return occupied, nil
}

func (ipl *InstrumentedParkingLot) RegistrationsByColour(ctx context.Context, colour string) ([]string, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.registrations_by_colour",
		trace.WithAttributes(attribute.String("vehicle.colour", colour)))
	defer span.End()

	start := time.Now()

	registrations, err := ipl.lot.RegistrationsByColour(colour)
	if err != nil {
		failSpan(span, err)
		ipl.record(ctx, start, attribute.String("operation", "registrations_by_colour"), attribute.String("status", "failed"))
		return nil, err
	}

	span.SetAttributes(attribute.Int("match_count", len(registrations)))
	ipl.record(ctx, start, attribute.String("operation", "registrations_by_colour"), attribute.String("status", "success"))
	return registrations, nil
}

func (ipl *InstrumentedParkingLot) SlotsByColour(ctx context.Context, colour string) ([]int, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.slots_by_colour",
		trace.WithAttributes(attribute.String("vehicle.colour", colour)))
	defer span.End()

	start := time.Now()

	slotNumbers, err := ipl.lot.SlotsByColour(colour)
	if err != nil {
		failSpan(span, err)
		ipl.record(ctx, start, attribute.String("operation", "slots_by_colour"), attribute.String("status", "failed"))
		return nil, err
	}

	span.SetAttributes(attribute.Int("match_count", len(slotNumbers)))
	ipl.record(ctx, start, attribute.String("operation", "slots_by_colour"), attribute.String("status", "success"))
	return slotNumbers, nil
}

func (ipl *InstrumentedParkingLot) SlotForRegistration(ctx context.Context, registrationNumber string) (int, bool, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.get_slot_by_registration",
		trace.WithAttributes(
			attribute.String("registration_number", registrationNumber),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("searching_by_registration")

	slotNumber, ok, err := ipl.lot.SlotForRegistration(registrationNumber)

	labels := []attribute.KeyValue{
		attribute.String("operation", "get_slot_by_registration"),
	}

	switch {
	case err != nil:
		failSpan(span, err)
		labels = append(labels, attribute.String("status", "failed"))
	case !ok:
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	default:
		span.SetAttributes(attribute.Int("found_slot_number", slotNumber))
		span.AddEvent("vehicle_found", trace.WithAttributes(
			attribute.Int("slot_number", slotNumber),
		))
		labels = append(labels, attribute.String("status", "found"))
	}

	ipl.record(ctx, start, labels...)

	return slotNumber, ok, err
}
