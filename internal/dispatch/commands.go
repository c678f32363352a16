package dispatch

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Animesh-Ghosh/parking-lot/internal/parking"
)

const (
	statusHeader = "Slot No. Registration No"
	notFound     = "Not found"
	lotFull      = "Sorry, parking lot is full"
)

// Engine is the set of lot operations the dispatcher drives.
// *parking.InstrumentedParkingLot satisfies it.
type Engine interface {
	Create(ctx context.Context, capacity int) error
	Park(ctx context.Context, registrationNumber, colour string) (int, bool, error)
	Leave(ctx context.Context, slotNumber int) (parking.Vehicle, bool, error)
	Status(ctx context.Context) ([]parking.Occupancy, error)
	RegistrationsByColour(ctx context.Context, colour string) ([]string, error)
	SlotsByColour(ctx context.Context, colour string) ([]int, error)
	SlotForRegistration(ctx context.Context, registrationNumber string) (int, bool, error)
}

type handlerFunc func(ctx context.Context, engine Engine, args []string) ([]string, error)

type command struct {
	arity int
	run   handlerFunc // nil for exit
}

var commands = map[string]command{
	"create_parking_lot":                        {arity: 1, run: createParkingLot},
	"park":                                      {arity: 2, run: park},
	"leave":                                     {arity: 1, run: leave},
	"status":                                    {arity: 0, run: status},
	"registration_numbers_for_cars_with_colour": {arity: 1, run: registrationNumbersForColour},
	"slot_numbers_for_cars_with_colour":         {arity: 1, run: slotNumbersForColour},
	"slot_number_for_registration_number":       {arity: 1, run: slotNumberForRegistration},
	"exit":                                      {arity: 0},
}

// Commands lists the recognised command names in sorted order.
func Commands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func createParkingLot(ctx context.Context, engine Engine, args []string) ([]string, error) {
	capacity, err := parking.ParseCapacity(args[0])
	if err != nil {
		return nil, err
	}
	if err := engine.Create(ctx, capacity); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("Created a parking lot with %s slots", args[0])}, nil
}

func park(ctx context.Context, engine Engine, args []string) ([]string, error) {
	slotNumber, ok, err := engine.Park(ctx, args[0], args[1])
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{lotFull}, nil
	}
	return []string{fmt.Sprintf("Allocated slot number: %d", slotNumber)}, nil
}

func leave(ctx context.Context, engine Engine, args []string) ([]string, error) {
	slotNumber, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: slot number %q is not an integer", parking.ErrInvalidArgument, args[0])
	}
	if _, _, err := engine.Leave(ctx, slotNumber); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("Slot number %d is free", slotNumber)}, nil
}

func status(ctx context.Context, engine Engine, _ []string) ([]string, error) {
	occupied, err := engine.Status(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(occupied)+1)
	lines = append(lines, statusHeader)
	for _, o := range occupied {
		lines = append(lines, fmt.Sprintf("%d %s", o.Slot, o.Vehicle.RegistrationNumber))
	}
	return lines, nil
}

func registrationNumbersForColour(ctx context.Context, engine Engine, args []string) ([]string, error) {
	registrations, err := engine.RegistrationsByColour(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return []string{joinOrNotFound(registrations)}, nil
}

func slotNumbersForColour(ctx context.Context, engine Engine, args []string) ([]string, error) {
	slotNumbers, err := engine.SlotsByColour(ctx, args[0])
	if err != nil {
		return nil, err
	}

	formatted := make([]string, len(slotNumbers))
	for i, n := range slotNumbers {
		formatted[i] = strconv.Itoa(n)
	}
	return []string{joinOrNotFound(formatted)}, nil
}

func slotNumberForRegistration(ctx context.Context, engine Engine, args []string) ([]string, error) {
	slotNumber, ok, err := engine.SlotForRegistration(ctx, args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{notFound}, nil
	}
	return []string{strconv.Itoa(slotNumber)}, nil
}

func joinOrNotFound(items []string) string {
	if len(items) == 0 {
		return notFound
	}
	return strings.Join(items, ", ")
}
