package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusActive   VehicleStatus = "active"
	VehicleStatusInactive VehicleStatus = "inactive"
)

type RentalType string

const (
	RentalTypeMonthly RentalType = "monthly"
	RentalTypeDaily   RentalType = "daily"
)

type ParkingType string

const (
	ParkingTypePrivate ParkingType = "private"
	ParkingTypeOpen    ParkingType = "open"
)

// Vehicle is one parking-slot rental record. VehicleNumber is a display and
// search field only; it is not unique across time because a removed vehicle's
// number can be reused. ID is the identity.
type Vehicle struct {
	ID            string      `json:"id"`
	VehicleNumber string      `json:"vehicle_number"`
	OwnerName     string      `json:"owner_name"`
	ContactNumber string      `json:"contact_number"`
	ParkingType   ParkingType `json:"parking_type"`
	RentalType    RentalType  `json:"rental_type"`
	LotNumber     string      `json:"lot_number"`
	// RentPrice is the amount per billing unit: per month for monthly
	// rentals, per day for daily rentals.
	RentPrice      int64 `json:"rent_price"`
	NumberOfDays   int32 `json:"number_of_days"`
	AdvanceAmount  int64 `json:"advance_amount"`
	AdditionalDays int32 `json:"additional_days"`
	// EndDate is the boundary of the current billing period, not a total
	// rental end. Reactivation and extension replace it.
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Status    VehicleStatus `json:"status"`
	// Version guards period/status writes against lost updates.
	Version   int64     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// VehicleFilter narrows List results. Zero values match everything.
type VehicleFilter struct {
	Status      VehicleStatus
	RentalType  RentalType
	ParkingType ParkingType
	// Search matches against vehicle_number (case-insensitive substring).
	Search string
}
