package reservation

// TotalPriceCents prices a booking: the court's hourly rate times the
// fractional duration in hours, rounded half up to the cent. Integer
// arithmetic keeps half-cent cases deterministic.
func TotalPriceCents(hourlyCents int64, r TimeRange) int64 {
	minutes := int64(r.Minutes())
	if hourlyCents <= 0 || minutes <= 0 {
		return 0
	}
	return (hourlyCents*minutes + 30) / 60
}
