package parking

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sixCarLot reproduces the usual walkthrough: six cars parked, slot 4 vacated.
func sixCarLot(t *testing.T) *ParkingLot {
	t.Helper()

	pl, err := NewParkingLot(6)
	require.NoError(t, err)

	for _, v := range []Vehicle{
		NewVehicle("KA-01-HH-1234", "White"),
		NewVehicle("KA-01-HH-9999", "White"),
		NewVehicle("KA-01-BB-0001", "Black"),
		NewVehicle("KA-01-HH-7777", "Red"),
		NewVehicle("KA-01-HH-2701", "Blue"),
		NewVehicle("KA-01-HH-3141", "Black"),
	} {
		_, ok, err := pl.Park(v.RegistrationNumber, v.Colour)
		require.NoError(t, err)
		require.True(t, ok)
	}

	_, _, err = pl.Leave(4)
	require.NoError(t, err)
	return pl
}

func TestNewParkingLot(t *testing.T) {
	for _, capacity := range []int{1, 6, 100} {
		pl, err := NewParkingLot(capacity)
		require.NoError(t, err)

		assert.Equal(t, capacity, pl.Capacity())
		available, err := pl.Available()
		require.NoError(t, err)
		assert.Equal(t, capacity, available)

		status, err := pl.Status()
		require.NoError(t, err)
		assert.Empty(t, status)

		for i, slot := range pl.slots {
			assert.Equal(t, i+1, slot.Number)
			assert.False(t, slot.IsOccupied())
		}
	}
}

func TestParkingLotCreateRejectsBadCapacity(t *testing.T) {
	var pl ParkingLot

	for _, capacity := range []int{0, -1} {
		err := pl.Create(capacity)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.False(t, pl.IsCreated())
	}

	require.NoError(t, pl.Create(2))
	_, _, err := pl.Park("KA-01-HH-1234", "White")
	require.NoError(t, err)

	assert.ErrorIs(t, pl.Create(0), ErrInvalidArgument)
	assert.Equal(t, 2, pl.Capacity())
	assert.Equal(t, 1, pl.Occupied())
}

func TestParkingLotCreateDiscardsPriorState(t *testing.T) {
	pl := sixCarLot(t)

	require.NoError(t, pl.Create(3))

	assert.Equal(t, 3, pl.Capacity())
	assert.Equal(t, 0, pl.Occupied())
	status, err := pl.Status()
	require.NoError(t, err)
	assert.Empty(t, status)
}

func TestParseCapacity(t *testing.T) {
	capacity, err := ParseCapacity("6")
	require.NoError(t, err)
	assert.Equal(t, 6, capacity)

	for _, raw := range []string{"0", "-1", "six", "", "1.5", "4611686018427387904", "99999999999999999999"} {
		_, err := ParseCapacity(raw)
		assert.ErrorIs(t, err, ErrInvalidArgument, "raw=%q", raw)
	}
}

func TestCapacityUpperBound(t *testing.T) {
	capacity, err := ParseCapacity(strconv.Itoa(MaxCapacity))
	require.NoError(t, err)
	assert.Equal(t, MaxCapacity, capacity)

	_, err = ParseCapacity(strconv.Itoa(MaxCapacity + 1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	pl := &ParkingLot{}
	assert.ErrorIs(t, pl.Create(MaxCapacity+1), ErrInvalidArgument)
	assert.ErrorIs(t, pl.Create(1<<62), ErrInvalidArgument)
	assert.False(t, pl.IsCreated())
}

func TestParkingLotUncreated(t *testing.T) {
	var pl ParkingLot

	_, err := pl.Available()
	assert.ErrorIs(t, err, ErrNotCreated)
	_, _, err = pl.Park("KA-01-HH-1234", "White")
	assert.ErrorIs(t, err, ErrNotCreated)
	_, _, err = pl.Leave(1)
	assert.ErrorIs(t, err, ErrNotCreated)
	_, err = pl.Status()
	assert.ErrorIs(t, err, ErrNotCreated)
	_, err = pl.RegistrationsByColour("White")
	assert.ErrorIs(t, err, ErrNotCreated)
	_, err = pl.SlotsByColour("White")
	assert.ErrorIs(t, err, ErrNotCreated)
	_, _, err = pl.SlotForRegistration("KA-01-HH-1234")
	assert.ErrorIs(t, err, ErrNotCreated)
}

func TestParkingLotPark(t *testing.T) {
	pl, err := NewParkingLot(3)
	require.NoError(t, err)

	for want, reg := range []string{"KA-01-HH-1234", "KA-01-HH-9999", "KA-01-BB-0001"} {
		slotNumber, ok, err := pl.Park(reg, "White")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want+1, slotNumber)
	}

	slotNumber, ok, err := pl.Park("KA-01-HH-7777", "Blue")
	require.NoError(t, err)
	assert.False(t, ok, "expected a full lot")
	assert.Zero(t, slotNumber)

	available, err := pl.Available()
	require.NoError(t, err)
	assert.Zero(t, available)
}

func TestParkingLotParkFirstFit(t *testing.T) {
	pl, err := NewParkingLot(3)
	require.NoError(t, err)

	for _, reg := range []string{"A", "B", "C"} {
		_, _, err := pl.Park(reg, "White")
		require.NoError(t, err)
	}
	_, _, err = pl.Leave(1)
	require.NoError(t, err)
	_, _, err = pl.Leave(3)
	require.NoError(t, err)

	slotNumber, ok, err := pl.Park("D", "Red")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, slotNumber)
}

func TestParkingLotLeave(t *testing.T) {
	pl, err := NewParkingLot(3)
	require.NoError(t, err)
	_, _, _ = pl.Park("KA-01-HH-1234", "White")
	_, _, _ = pl.Park("KA-01-HH-9999", "Black")

	vehicle, ok, err := pl.Leave(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, NewVehicle("KA-01-HH-1234", "White"), vehicle)
	assert.False(t, pl.slots[0].IsOccupied())

	slotNumber, _, err := pl.Park("KA-01-BB-0001", "Red")
	require.NoError(t, err)
	assert.Equal(t, 1, slotNumber, "expected slot 1 to be reused")
}

func TestParkingLotLeaveOutOfRange(t *testing.T) {
	pl := sixCarLot(t)

	for _, slotNumber := range []int{0, -1, 7, 10} {
		_, _, err := pl.Leave(slotNumber)
		assert.ErrorIs(t, err, ErrInvalidArgument, "slot=%d", slotNumber)
	}
	assert.Equal(t, 5, pl.Occupied())
}

func TestParkingLotLeaveEmptySlotIsNoop(t *testing.T) {
	pl := sixCarLot(t)

	before, err := pl.Status()
	require.NoError(t, err)

	_, ok, err := pl.Leave(4)
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := pl.Status()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	available, err := pl.Available()
	require.NoError(t, err)
	assert.Equal(t, 1, available)
}

func TestParkingLotStatus(t *testing.T) {
	pl := sixCarLot(t)

	status, err := pl.Status()
	require.NoError(t, err)

	assert.Equal(t, []Occupancy{
		{Slot: 1, Vehicle: NewVehicle("KA-01-HH-1234", "White")},
		{Slot: 2, Vehicle: NewVehicle("KA-01-HH-9999", "White")},
		{Slot: 3, Vehicle: NewVehicle("KA-01-BB-0001", "Black")},
		{Slot: 5, Vehicle: NewVehicle("KA-01-HH-2701", "Blue")},
		{Slot: 6, Vehicle: NewVehicle("KA-01-HH-3141", "Black")},
	}, status)
}

func TestParkingLotColourQueries(t *testing.T) {
	pl := sixCarLot(t)
	_, _, err := pl.Park("KA-01-P-333", "White")
	require.NoError(t, err)

	registrations, err := pl.RegistrationsByColour("White")
	require.NoError(t, err)
	assert.Equal(t, []string{"KA-01-HH-1234", "KA-01-HH-9999", "KA-01-P-333"}, registrations)

	slotNumbers, err := pl.SlotsByColour("White")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, slotNumbers)

	registrations, err = pl.RegistrationsByColour("Red")
	require.NoError(t, err)
	assert.Empty(t, registrations)

	slotNumbers, err = pl.SlotsByColour("white")
	require.NoError(t, err)
	assert.Empty(t, slotNumbers, "colour match is case-sensitive")
}

func TestParkingLotSlotForRegistration(t *testing.T) {
	pl := sixCarLot(t)

	slotNumber, ok, err := pl.SlotForRegistration("KA-01-HH-3141")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 6, slotNumber)

	_, ok, err = pl.SlotForRegistration("MH-04-AY-1111")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParkingLotSlotForRegistrationLowestWins(t *testing.T) {
	pl, err := NewParkingLot(3)
	require.NoError(t, err)
	_, _, _ = pl.Park("KA-01-HH-1234", "White")
	_, _, _ = pl.Park("DUP", "White")
	_, _, _ = pl.Park("DUP", "Black")

	slotNumber, ok, err := pl.SlotForRegistration("DUP")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, slotNumber)
}

func TestParkingLotAvailableTracksOccupied(t *testing.T) {
	pl, err := NewParkingLot(4)
	require.NoError(t, err)

	check := func() {
		available, err := pl.Available()
		require.NoError(t, err)
		assert.Equal(t, pl.Capacity()-pl.Occupied(), available)
	}

	check()
	_, _, _ = pl.Park("A", "Red")
	_, _, _ = pl.Park("B", "Red")
	check()
	_, _, _ = pl.Leave(2)
	_, _, _ = pl.Leave(2)
	check()
	assert.Equal(t, 1, pl.Occupied())
}
