package models

// Fixed value universes used for enum validation and for group-by
// projections. Group-by results follow the declared order here, never
// insertion or alphabetical order.

// Weekdays is the delivery-day universe for the distribution network.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Shifts covers milk collection shifts.
var Shifts = []string{"Morning", "Evening"}

// PaymentMethods covers sales and payflow transactions.
var PaymentMethods = []string{"Cash", "Card", "UPI", "Bank Transfer"}

// PaymentStatuses covers payflow transaction states.
var PaymentStatuses = []string{"Pending", "Completed", "Failed"}

// RouteStatuses covers distribution route states.
var RouteStatuses = []string{"Active", "Inactive"}

// BatchStatuses covers unit-tracker batch states.
var BatchStatuses = []string{"Pending", "In Transit", "Delivered"}

// TeamRoles covers team-management positions.
var TeamRoles = []string{"Manager", "Supervisor", "Technician", "Operator", "Driver"}

// MessagePriorities covers buzzbox message levels.
var MessagePriorities = []string{"Low", "Medium", "High"}

// QualityResults covers qa-module outcomes.
var QualityResults = []string{"Pass", "Fail"}

// RouteRemovalReasons is the fixed reason universe tallied when a route is
// taken out of service.
var RouteRemovalReasons = []string{"Vehicle Breakdown", "Driver Unavailable", "Route Change", "Weather"}
