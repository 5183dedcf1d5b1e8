// Package kernel holds the shared value objects of the freight domain:
// entity identifiers, scope-prefixed sequence identifiers (shipment,
// delivery-note and voucher numbers), the derived progress percentage,
// and the acting user.
//
// Sequence identifiers are reproduced bit-exact for compatibility with
// existing records:
//
//	Job          SH-{year}-{seq:03d}
//	DeliveryNote DN-{year}-{month:02d}-{seq:03d}
//	Voucher      VH-{year}-{seq:03d}
package kernel
