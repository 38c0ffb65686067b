package routes

const (
	// Health
	Health = "/health"

	// Auth (public)
	AuthLogin = "/api/auth/login"

	// Users
	Register    = "/api/register"
	Users       = "/api/users"
	UserByID    = "/api/users/{id}"
	UserDisable = "/api/users/{id}/disable"
	UserEnable  = "/api/users/{id}/enable"
	Profile     = "/api/profile"

	// Properties
	Properties            = "/api/properties"
	PropertyByID          = "/api/properties/{id}"
	PropertyAssignManager = "/api/properties/{id}/assign-manager"
	PropertyFloors        = "/api/properties/{id}/floors"
	PropertyLocals        = "/api/properties/{id}/locals"

	// Floors
	Floors          = "/api/floors"
	FloorByID       = "/api/floors/{id}"
	FloorLocals     = "/api/floors/{id}/locals"
	FloorOccupancy  = "/api/floors/{id}/occupancy"
	OccupancyReport = "/api/floors/reports/occupancy"

	// Locals
	Locals       = "/api/locals"
	LocalByID    = "/api/locals/{id}"
	LocalRestore = "/api/locals/{id}/restore"
	LocalStatus  = "/api/locals/{id}/status"

	// Tenants
	Tenants    = "/api/tenants"
	TenantByID = "/api/tenants/{id}"

	// Leases
	Leases             = "/api/leases"
	LeaseByID          = "/api/leases/{id}"
	LeaseReportPDF     = "/api/leases/report/pdf"
	LeaseTriggerExpiry = "/api/leases/trigger-expired"

	// Payments
	Payments              = "/api/payments"
	PaymentByID           = "/api/payments/{id}"
	PaymentRestore        = "/api/payments/{id}/restore"
	PaymentProof          = "/api/payments/proof/{paymentId}/{filename}"
	PaymentNotifyUpcoming = "/api/payments/notify-upcoming"

	// Payment modes
	PaymentModes    = "/api/payment-modes"
	PaymentModeByID = "/api/payment-modes/{id}"

	// Notifications
	Notifications       = "/api/notifications"
	NotificationsUnread = "/api/notifications/unread"
	NotificationsAll    = "/api/notifications/all"
	NotificationRead    = "/api/notifications/{id}/read"
)
