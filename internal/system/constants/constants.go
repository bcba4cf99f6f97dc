package constants

const ApiBasePath = "/api"
const CustomersApiPath = "customers"
const EventsApiPath = "events"

const CustomerTable = "customers"
const EventTable = "events"

// Event types recorded by product instrumentation.
const (
	EventTypeLogin       = "login"
	EventTypeFeatureUse  = "feature_use"
	EventTypeTicketOpen  = "ticket_open"
	EventTypeTicketClose = "ticket_close"
)

var AllowedEventTypes = map[string]bool{
	EventTypeLogin:       true,
	EventTypeFeatureUse:  true,
	EventTypeTicketOpen:  true,
	EventTypeTicketClose: true,
}

// Customer segments. Segments shape seed data only, never the score itself.
const (
	SegmentEnterprise = "enterprise"
	SegmentMidMarket  = "mid-market"
	SegmentSMB        = "smb"
	SegmentStartup    = "startup"
)

var AllowedSegments = map[string]bool{
	SegmentEnterprise: true,
	SegmentMidMarket:  true,
	SegmentSMB:        true,
	SegmentStartup:    true,
}

// Ticket severities carried in ticket_open metadata.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)
