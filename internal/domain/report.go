package domain

// OutstandingTotals rolls up arrears for one rental type.
type OutstandingTotals struct {
	VehicleCount int32 `json:"vehicle_count"`
	TotalDue     int64 `json:"total_due"`
}

// DashboardReport is the read-side aggregate served to the dashboard. All
// figures are recomputed on demand; an empty dataset yields all zeros.
type DashboardReport struct {
	ActiveVehicles      int32             `json:"active_vehicles"`
	InactiveVehicles    int32             `json:"inactive_vehicles"`
	MonthlyVehicles     int32             `json:"monthly_vehicles"`
	DailyVehicles       int32             `json:"daily_vehicles"`
	ExpectedMonthlyRent int64             `json:"expected_monthly_rent"`
	OutstandingMonthly  OutstandingTotals `json:"outstanding_monthly"`
	OutstandingDaily    OutstandingTotals `json:"outstanding_daily"`
	AdvanceMonthlyNet   int64             `json:"advance_monthly_net"`
	AdvanceTotalToDate  int64             `json:"advance_total_to_date"`
}
