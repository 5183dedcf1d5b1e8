// Package deliverynote provides the DeliveryNote aggregate. Each item of a
// note marks the bill of lading of its clearance schedule as delivered.
package deliverynote
