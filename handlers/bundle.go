package handlers

// HandlerBundle groups the assembled handlers for route registration.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Blocked      *BlockedHandler
	Appointments *AppointmentHandler
}
