package parking

type Vehicle struct {
	RegistrationNumber string
	Colour             string
}

func NewVehicle(registrationNumber, colour string) Vehicle {
	return Vehicle{
		RegistrationNumber: registrationNumber,
		Colour:             colour,
	}
}
