package parking

import (
	"fmt"
	"strconv"
)

// MaxCapacity bounds the number of slots a lot may be created with.
const MaxCapacity = 1 << 20

// Occupancy is one occupied slot as reported by Status.
type Occupancy struct {
	Slot    int
	Vehicle Vehicle
}

// ParkingLot is the allocation engine. The zero value has no slots and
// rejects every operation except Create.
type ParkingLot struct {
	slots    []Slot
	occupied int
}

func NewParkingLot(capacity int) (*ParkingLot, error) {
	pl := &ParkingLot{}
	if err := pl.Create(capacity); err != nil {
		return nil, err
	}
	return pl, nil
}

// ParseCapacity turns the raw create_parking_lot argument into a lot size.
func ParseCapacity(raw string) (int, error) {
	capacity, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: capacity %q is not an integer", ErrInvalidArgument, raw)
	}
	if err := checkCapacity(capacity); err != nil {
		return 0, err
	}
	return capacity, nil
}

// Create allocates capacity empty slots, discarding any previous state.
// On error the lot is left untouched.
func (pl *ParkingLot) Create(capacity int) error {
	if err := checkCapacity(capacity); err != nil {
		return err
	}

	slots := make([]Slot, capacity)
	for i := range slots {
		slots[i] = NewSlot(i + 1)
	}

	pl.slots = slots
	pl.occupied = 0
	return nil
}

func checkCapacity(capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1, got %d", ErrInvalidArgument, capacity)
	}
	if capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity must be at most %d, got %d", ErrInvalidArgument, MaxCapacity, capacity)
	}
	return nil
}

func (pl *ParkingLot) IsCreated() bool {
	return pl.slots != nil
}

func (pl *ParkingLot) Capacity() int {
	return len(pl.slots)
}

func (pl *ParkingLot) Occupied() int {
	return pl.occupied
}

func (pl *ParkingLot) Available() (int, error) {
	if !pl.IsCreated() {
		return 0, ErrNotCreated
	}
	return len(pl.slots) - pl.occupied, nil
}

// Park puts the vehicle in the lowest-numbered free slot. ok is false when
// the lot is full.
func (pl *ParkingLot) Park(registrationNumber, colour string) (slotNumber int, ok bool, err error) {
	if !pl.IsCreated() {
		return 0, false, ErrNotCreated
	}

	for i := range pl.slots {
		slot := &pl.slots[i]
		if !slot.IsOccupied() {
			slot.Park(NewVehicle(registrationNumber, colour))
			pl.occupied++
			return slot.Number, true, nil
		}
	}
	return 0, false, nil
}

// Leave empties the slot. Leaving an empty slot is a no-op; the returned
// bool reports whether a vehicle was actually removed.
func (pl *ParkingLot) Leave(slotNumber int) (Vehicle, bool, error) {
	if !pl.IsCreated() {
		return Vehicle{}, false, ErrNotCreated
	}
	if slotNumber < 1 || slotNumber > len(pl.slots) {
		return Vehicle{}, false, fmt.Errorf("%w: slot number %d outside 1..%d", ErrInvalidArgument, slotNumber, len(pl.slots))
	}

	vehicle, ok := pl.slots[slotNumber-1].Leave()
	if ok {
		pl.occupied--
	}
	return vehicle, ok, nil
}

func (pl *ParkingLot) Status() ([]Occupancy, error) {
	if !pl.IsCreated() {
		return nil, ErrNotCreated
	}

	occupied := make([]Occupancy, 0, pl.occupied)
	for i := range pl.slots {
		if vehicle, ok := pl.slots[i].Vehicle(); ok {
			occupied = append(occupied, Occupancy{Slot: pl.slots[i].Number, Vehicle: vehicle})
		}
	}
	return occupied, nil
}

func (pl *ParkingLot) RegistrationsByColour(colour string) ([]string, error) {
	if !pl.IsCreated() {
		return nil, ErrNotCreated
	}

	registrations := []string{}
	for i := range pl.slots {
		if vehicle, ok := pl.slots[i].Vehicle(); ok && vehicle.Colour == colour {
			registrations = append(registrations, vehicle.RegistrationNumber)
		}
	}
	return registrations, nil
}

func (pl *ParkingLot) SlotsByColour(colour string) ([]int, error) {
	if !pl.IsCreated() {
		return nil, ErrNotCreated
	}

	slotNumbers := []int{}
	for i := range pl.slots {
		if vehicle, ok := pl.slots[i].Vehicle(); ok && vehicle.Colour == colour {
			slotNumbers = append(slotNumbers, pl.slots[i].Number)
		}
	}
	return slotNumbers, nil
}

// SlotForRegistration returns the lowest-numbered slot holding the
// registration. Duplicates are not rejected at park time, so first match wins.
func (pl *ParkingLot) SlotForRegistration(registrationNumber string) (int, bool, error) {
	if !pl.IsCreated() {
		return 0, false, ErrNotCreated
	}

	for i := range pl.slots {
		if vehicle, ok := pl.slots[i].Vehicle(); ok && vehicle.RegistrationNumber == registrationNumber {
			return pl.slots[i].Number, true, nil
		}
	}
	return 0, false, nil
}
