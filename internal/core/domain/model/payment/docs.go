// Package payment provides the JobPayment aggregate and its status machine.
//
// A payment is created as Draft, handed to accounts (Pending, or No Payment for
// non-payable records), optionally routed through a confirmation round trip,
// and finally settled as Paid with a voucher shared by its batch.
package payment
