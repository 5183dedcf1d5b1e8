// Package job provides the Job aggregate: one shipment tracked end-to-end from
// registration through customs clearance, delivery and payment settlement.
//
// The package includes:
//   - Job: the aggregate root holding counterparts, bills of lading, containers,
//     status and the derived progress percentage
//   - Status: the explicit transition table for job statuses
//
// Key business rules:
//   - Progress is derived. It starts at 0 and only the progress reconciler moves it
//   - A job without bills of lading counts as one implicit bill of lading
//   - Cleared (all bills delivered) and Payment are independent axes;
//     Completed requires both
//   - Status changes go through the transition table; requests that would
//     regress an axis already passed are absorbed, anything else illegal is rejected
package job
