// Package models defines the core domain records for Hostezee billing.
//
// # Inputs to the bill calculator
//
//   - Booking: a stay for one room, or a group of rooms sharing one check-in/check-out window
//   - Room: a bookable room with a per-night price
//   - FoodOrder: a restaurant/room-service order charged to a booking
//   - ExtraService: any other chargeable service (laundry, airport pickup, ...)
//   - ChargeOptions: the GST and service-charge toggles chosen at checkout
//
// Monetary values on input records are decimal strings, exactly as the booking API supplies
// them. Parsing is the calculator's job and never fails.
//
// # Persisted outputs
//
//   - Bill: the record written at checkout from a computed breakdown
//   - User: a staff account allowed to operate the billing desk
package models
