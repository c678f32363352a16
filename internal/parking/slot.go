package parking

// Slot is one unit of capacity. It holds either no vehicle or exactly one.
type Slot struct {
	Number   int
	occupied bool
	vehicle  Vehicle
}

func NewSlot(number int) Slot {
	return Slot{Number: number}
}

func (s *Slot) IsOccupied() bool {
	return s.occupied
}

func (s *Slot) Vehicle() (Vehicle, bool) {
	return s.vehicle, s.occupied
}

func (s *Slot) Park(vehicle Vehicle) {
	s.vehicle = vehicle
	s.occupied = true
}

func (s *Slot) Leave() (Vehicle, bool) {
	vehicle, ok := s.vehicle, s.occupied
	s.vehicle = Vehicle{}
	s.occupied = false
	return vehicle, ok
}
