package domain

// FareRule is the tiered minimum-fare model for a vehicle class: journeys up
// to FirstNMiles cost MinFareForFirstN flat, every mile beyond that is billed
// at PerMileAfterFirstN.
type FareRule struct {
	FirstNMiles        float64
	MinFareForFirstN   float64
	PerMileAfterFirstN float64
}

// VehicleClass describes one class of chauffeur vehicle. Instances are
// immutable and loaded from the static table below at process start.
type VehicleClass struct {
	ID                   string
	Name                 string
	PassengerCapacity    int
	LuggageCapacity      int
	FareRule             FareRule
	MeetAndGreetFee      float64
	WaitingRatePerMinute float64 // 0 means the class has no waiting service
}

// DefaultWaitingRatePerMinute is a placeholder rate pending a confirmed
// business rule. TODO: confirm the per-minute waiting rate with operations
// before it is relied on for live pricing.
const DefaultWaitingRatePerMinute = 0.50

// vehicleClasses is the static catalogue, in display order.
var vehicleClasses = []VehicleClass{
	{
		ID:                "saloon",
		Name:              "Business Saloon",
		PassengerCapacity: 3,
		LuggageCapacity:   2,
		FareRule:          FareRule{FirstNMiles: 6, MinFareForFirstN: 35, PerMileAfterFirstN: 1.8},
		MeetAndGreetFee:   10,
	},
	{
		ID:                "estate",
		Name:              "Business Estate",
		PassengerCapacity: 3,
		LuggageCapacity:   4,
		FareRule:          FareRule{FirstNMiles: 6, MinFareForFirstN: 40, PerMileAfterFirstN: 2.2},
		MeetAndGreetFee:   10,
	},
	{
		ID:                   "comfort",
		Name:                 "Comfort Class",
		PassengerCapacity:    3,
		LuggageCapacity:      2,
		FareRule:             FareRule{FirstNMiles: 6, MinFareForFirstN: 45, PerMileAfterFirstN: 3.5},
		MeetAndGreetFee:      20,
		WaitingRatePerMinute: DefaultWaitingRatePerMinute,
	},
	{
		ID:                   "executive",
		Name:                 "Executive Class",
		PassengerCapacity:    3,
		LuggageCapacity:      2,
		FareRule:             FareRule{FirstNMiles: 6, MinFareForFirstN: 55, PerMileAfterFirstN: 4.2},
		MeetAndGreetFee:      20,
		WaitingRatePerMinute: DefaultWaitingRatePerMinute,
	},
	{
		ID:                   "luxury",
		Name:                 "First Class",
		PassengerCapacity:    3,
		LuggageCapacity:      2,
		FareRule:             FareRule{FirstNMiles: 6, MinFareForFirstN: 75, PerMileAfterFirstN: 5.5},
		MeetAndGreetFee:      25,
		WaitingRatePerMinute: DefaultWaitingRatePerMinute,
	},
	{
		ID:                "mpv",
		Name:              "Luxury MPV",
		PassengerCapacity: 6,
		LuggageCapacity:   5,
		FareRule:          FareRule{FirstNMiles: 6, MinFareForFirstN: 55, PerMileAfterFirstN: 3.8},
		MeetAndGreetFee:   20,
	},
	{
		ID:                "minibus",
		Name:              "Executive Minibus",
		PassengerCapacity: 8,
		LuggageCapacity:   8,
		FareRule:          FareRule{FirstNMiles: 6, MinFareForFirstN: 70, PerMileAfterFirstN: 4.5},
		MeetAndGreetFee:   25,
	},
}

// hourlyRates maps a vehicle class to a flat total per supported hire length.
var hourlyRates = map[string]map[int]float64{
	"saloon":    {3: 120, 4: 155, 6: 225, 8: 290},
	"estate":    {3: 130, 4: 170, 6: 245, 8: 315},
	"comfort":   {3: 150, 4: 195, 6: 280, 8: 360},
	"executive": {3: 180, 4: 235, 6: 340, 8: 435},
	"luxury":    {3: 240, 4: 310, 6: 450, 8: 580},
	"mpv":       {3: 175, 4: 230, 6: 330, 8: 425},
	"minibus":   {3: 210, 4: 275, 6: 400, 8: 510},
}

// hourlyDurations lists the supported hire lengths in hours, ascending.
var hourlyDurations = []int{3, 4, 6, 8}

// GetVehicleClass looks up a vehicle class by id.
func GetVehicleClass(id string) (VehicleClass, bool) {
	for _, vc := range vehicleClasses {
		if vc.ID == id {
			return vc, true
		}
	}
	return VehicleClass{}, false
}

// ListVehicleClasses returns every vehicle class in stable display order.
func ListVehicleClasses() []VehicleClass {
	out := make([]VehicleClass, len(vehicleClasses))
	copy(out, vehicleClasses)
	return out
}

// HourlyRate returns the flat total for hiring a class for the given number
// of hours. The second return is false when the class or duration is not
// offered.
func HourlyRate(classID string, hours int) (float64, bool) {
	rates, ok := hourlyRates[classID]
	if !ok {
		return 0, false
	}
	rate, ok := rates[hours]
	return rate, ok
}

// HourlyDurations returns the supported hourly hire lengths, ascending.
func HourlyDurations() []int {
	out := make([]int, len(hourlyDurations))
	copy(out, hourlyDurations)
	return out
}
