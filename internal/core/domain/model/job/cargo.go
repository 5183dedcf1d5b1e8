package job

import (
	"fmt"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// BillOfLading is one transport document under a job. Clearance schedules
// refer to it by reference number.
type BillOfLading struct {
	id              kernel.UUID
	masterNo        string
	houseNo         string
	vessel          string
	portOfLoading   string
	portOfDischarge string
}

// BillOfLadingParams carries the descriptive fields of a bill of lading.
type BillOfLadingParams struct {
	MasterNo        string
	HouseNo         string
	Vessel          string
	PortOfLoading   string
	PortOfDischarge string
}

func NewBillOfLading(id kernel.UUID, p BillOfLadingParams) (BillOfLading, error) {
	if err := id.Validate(); err != nil {
		return BillOfLading{}, err
	}
	master := strings.TrimSpace(p.MasterNo)
	if master == "" {
		return BillOfLading{}, errs.NewValueIsRequiredError("bill of lading master number")
	}
	return BillOfLading{
		id:              id,
		masterNo:        master,
		houseNo:         strings.TrimSpace(p.HouseNo),
		vessel:          strings.TrimSpace(p.Vessel),
		portOfLoading:   strings.TrimSpace(p.PortOfLoading),
		portOfDischarge: strings.TrimSpace(p.PortOfDischarge),
	}, nil
}

func (b BillOfLading) ID() kernel.UUID         { return b.id }
func (b BillOfLading) MasterNo() string        { return b.masterNo }
func (b BillOfLading) HouseNo() string         { return b.houseNo }
func (b BillOfLading) Vessel() string          { return b.vessel }
func (b BillOfLading) PortOfLoading() string   { return b.portOfLoading }
func (b BillOfLading) PortOfDischarge() string { return b.portOfDischarge }

// Reference is the number schedules use: the house number when present,
// otherwise the master number.
func (b BillOfLading) Reference() string {
	if b.houseNo != "" {
		return b.houseNo
	}
	return b.masterNo
}

// Matches reports whether ref names this bill by either number.
func (b BillOfLading) Matches(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref != "" && (strings.EqualFold(ref, b.masterNo) || strings.EqualFold(ref, b.houseNo))
}

// Package is a counted package kind inside a container.
type Package struct {
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
}

// Container belongs to a job, optionally to one of its bills of lading.
type Container struct {
	number   string
	kind     string
	blNumber string
	packages []Package
}

func NewContainer(number, kind, blNumber string, packages []Package) (Container, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Container{}, errs.NewValueIsRequiredError("container number")
	}
	for i, p := range packages {
		if strings.TrimSpace(p.Kind) == "" {
			return Container{}, errs.NewValueIsRequiredError(fmt.Sprintf("package %d kind", i))
		}
		if p.Quantity < 1 {
			return Container{}, errs.NewValueIsOutOfRangeError(fmt.Sprintf("package %d quantity", i), p.Quantity, 1, "unbounded")
		}
	}
	return Container{
		number:   number,
		kind:     strings.TrimSpace(kind),
		blNumber: strings.TrimSpace(blNumber),
		packages: append([]Package(nil), packages...),
	}, nil
}

func (c Container) Number() string { return c.number }
func (c Container) Kind() string   { return c.kind }

// BLNumber is empty when the container is attached to the job only.
func (c Container) BLNumber() string { return c.blNumber }

func (c Container) Packages() []Package {
	return append([]Package(nil), c.packages...)
}

// Counterparts names the parties of a shipment. Only the customer is required.
type Counterparts struct {
	Customer      string
	Consignee     string
	ConsigneeCode string
	Exporter      string
	Shipper       string
}

func (c Counterparts) normalized() (Counterparts, error) {
	c.Customer = strings.TrimSpace(c.Customer)
	c.Consignee = strings.TrimSpace(c.Consignee)
	c.ConsigneeCode = strings.TrimSpace(c.ConsigneeCode)
	c.Exporter = strings.TrimSpace(c.Exporter)
	c.Shipper = strings.TrimSpace(c.Shipper)
	if c.Customer == "" {
		return c, errs.NewValueIsRequiredError("customer")
	}
	return c, nil
}
