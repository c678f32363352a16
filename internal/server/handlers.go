package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/Animesh-Ghosh/parking-lot/internal/dispatch"
	"github.com/Animesh-Ghosh/parking-lot/internal/logging"
	"github.com/Animesh-Ghosh/parking-lot/internal/parking"
)

const maxCommandBody = 1 << 20

// Handler serves a single parking lot. The engine is not safe for
// concurrent use, so every request holds mu for the whole operation.
type Handler struct {
	serviceName string
	tracer      trace.Tracer

	mu         sync.Mutex
	parkingLot *parking.InstrumentedParkingLot
}

func NewHandler(serviceName string, parkingLot *parking.InstrumentedParkingLot, tracer trace.Tracer) *Handler {
	return &Handler{
		serviceName: serviceName,
		tracer:      tracer,
		parkingLot:  parkingLot,
	}
}

func errorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, parking.ErrNotCreated):
		return http.StatusBadRequest
	case errors.Is(err, parking.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, dispatch.ErrUnknownCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
		Meta:    extractMeta(r.Context()),
	})
}

func (h *Handler) CreateParkingLot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ParkingLotCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.parkingLot.Create(ctx, req.Capacity); err != nil {
		WriteError(ctx, w, errorStatus(err), err.Error())
		return
	}

	logging.Info(ctx, "parking lot created", "capacity", req.Capacity)
	WriteSuccess(ctx, w, "Parking lot created successfully", map[string]any{
		"capacity": req.Capacity,
	})
}

func (h *Handler) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ParkVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Registration == "" || req.Colour == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Registration and colour are required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	slotNumber, ok, err := h.parkingLot.Park(ctx, req.Registration, req.Colour)
	if err != nil {
		WriteError(ctx, w, errorStatus(err), err.Error())
		return
	}
	if !ok {
		WriteError(ctx, w, http.StatusConflict, "Sorry, parking lot is full")
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", ParkVehicleResponse{
		SlotNumber:   slotNumber,
		Registration: req.Registration,
		Colour:       req.Colour,
	})
}

func (h *Handler) LeaveSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req LeaveSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	vehicle, _, err := h.parkingLot.Leave(ctx, req.SlotNumber)
	if err != nil {
		WriteError(ctx, w, errorStatus(err), err.Error())
		return
	}

	WriteSuccess(ctx, w, "Slot vacated successfully", LeaveSlotResponse{
		SlotNumber:   req.SlotNumber,
		Registration: vehicle.RegistrationNumber,
		Colour:       vehicle.Colour,
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	occupied, err := h.parkingLot.Status(ctx)
	if err != nil {
		WriteError(ctx, w, errorStatus(err), err.Error())
		return
	}

	slots := make([]SlotStatus, 0, len(occupied))
	for _, o := range occupied {
		slots = append(slots, SlotStatus{
			SlotNumber:   o.Slot,
			Registration: o.Vehicle.RegistrationNumber,
			Colour:       o.Vehicle.Colour,
		})
	}

	available, err := h.parkingLot.Available(ctx)
	if err != nil {
		WriteError(ctx, w, errorStatus(err), err.Error())
		return
	}

	WriteSuccess(ctx, w, "Status retrieved successfully", StatusResponse{
		Capacity:  h.parkingLot.Lot().Capacity(),
		Occupied:  len(occupied),
		Available: available,
		Slots:     slots,
	})
}

func (h *Handler) RegistrationsByColour(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	colour := chi.URLParam(r, "colour")

	h.mu.Lock()
	defer h.mu.Unlock()

	registrations, err := h.parkingLot.RegistrationsByColour(ctx, colour)
	if err != nil {
		WriteError(ctx, w, errorStatus(err), err.Error())
		return
	}
	if len(registrations) == 0 {
		WriteError(ctx, w, http.StatusNotFound, "Not found")
		return
	}

	WriteSuccess(ctx, w, "Vehicles found", ColourQueryResponse{
		Colour:        colour,
		Registrations: registrations,
	})
}

func (h *Handler) SlotsByColour(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	colour := chi.URLParam(r, "colour")

	h.mu.Lock()
	defer h.mu.Unlock()

	slotNumbers, err := h.parkingLot.SlotsByColour(ctx, colour)
	if err != nil {
		WriteError(ctx, w, errorStatus(err), err.Error())
		return
	}
	if len(slotNumbers) == 0 {
		WriteError(ctx, w, http.StatusNotFound, "Not found")
		return
	}

	WriteSuccess(ctx, w, "Vehicles found", ColourQueryResponse{
		Colour:      colour,
		SlotNumbers: slotNumbers,
	})
}

func (h *Handler) FindByRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	registration := chi.URLParam(r, "registration")

	h.mu.Lock()
	defer h.mu.Unlock()

	slotNumber, ok, err := h.parkingLot.SlotForRegistration(ctx, registration)
	if err != nil {
		WriteError(ctx, w, errorStatus(err), err.Error())
		return
	}
	if !ok {
		WriteError(ctx, w, http.StatusNotFound, "Not found")
		return
	}

	WriteSuccess(ctx, w, "Vehicle found", FindVehicleResponse{
		SlotNumber:   slotNumber,
		Registration: registration,
	})
}

// RunCommands feeds the request body through the text protocol against the
// shared lot. On failure the output produced before the failing line is
// still returned, with the error in X-Dispatch-Error.
func (h *Handler) RunCommands(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body := http.MaxBytesReader(w, r.Body, maxCommandBody)

	h.mu.Lock()
	defer h.mu.Unlock()

	var out bytes.Buffer
	d := dispatch.New(h.parkingLot, &out, dispatch.WithTracer(h.tracer))
	err := d.Process(ctx, dispatch.NewReaderSource(body))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	status := http.StatusOK
	if err != nil {
		status = errorStatus(err)
		w.Header().Set("X-Dispatch-Error", err.Error())
		logging.Warn(ctx, "command batch stopped", "error", err)
	}
	w.WriteHeader(status)
	_, _ = w.Write(out.Bytes())
}
