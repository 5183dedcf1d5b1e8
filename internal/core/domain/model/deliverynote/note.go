package deliverynote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrNoteIsNotConstructed = errors.New("Note must be created via NewNote or RestoreNote")

type Status string

const (
	StatusPending   Status = "Pending"
	StatusDelivered Status = "Delivered"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusDelivered:
		return Status(raw), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("delivery note status", fmt.Errorf("%q is not a valid status", raw))
	}
}

// Counterparts is the copy of the job's parties taken when the note is issued.
// Later edits to the job do not change an issued note.
type Counterparts struct {
	Customer  string `json:"customer"`
	Consignee string `json:"consignee"`
	Exporter  string `json:"exporter"`
	Shipper   string `json:"shipper"`
}

// Document is an attachment; the file itself lives in external storage.
type Document struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

type Vehicle struct {
	PlateNo string
	Driver  string
	Phone   string
}

// Dates holds the issuance metadata of a note.
type Dates struct {
	IssuedOn    time.Time
	DeliveredOn *time.Time
}

// Note is a delivery note.
type Note struct {
	id           kernel.SequenceID
	counterparts Counterparts
	status       Status
	dates        Dates
	items        []Item
	vehicles     []Vehicle
	documents    []Document
	comments     string

	issuedBy  string
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewNote issues a Pending note. At least one item is required.
func NewNote(
	id kernel.SequenceID,
	counterparts Counterparts,
	items []Item,
	vehicles []Vehicle,
	dates Dates,
	comments string,
	issuedBy kernel.Actor,
	at time.Time,
) (*Note, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("delivery note items")
	}
	if err := errors.Join(id.Validate(), issuedBy.Validate()); err != nil {
		return nil, err
	}
	if id.Scope() != kernel.DeliveryNoteScope {
		return nil, errs.NewValueIsInvalidErrorWithCause("delivery note id", fmt.Errorf("%s is not a delivery note id", id))
	}
	for i, v := range vehicles {
		if strings.TrimSpace(v.PlateNo) == "" {
			return nil, errs.NewValueIsRequiredError(fmt.Sprintf("vehicle %d plate number", i))
		}
	}
	if dates.IssuedOn.IsZero() {
		dates.IssuedOn = at
	}

	return &Note{
		id:           id,
		counterparts: counterparts,
		status:       StatusPending,
		dates:        dates,
		items:        append([]Item(nil), items...),
		vehicles:     append([]Vehicle(nil), vehicles...),
		comments:     strings.TrimSpace(comments),
		issuedBy:     issuedBy.Name(),
		createdAt:    at,
		updatedAt:    at,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Snapshot is the persisted state of a note.
type Snapshot struct {
	ID           kernel.SequenceID
	Counterparts Counterparts
	Status       Status
	Dates        Dates
	Items        []Item
	Vehicles     []Vehicle
	Documents    []Document
	Comments     string
	IssuedBy     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func RestoreNote(s Snapshot) (*Note, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(s.Status)); err != nil {
		return nil, err
	}
	return &Note{
		id:           s.ID,
		counterparts: s.Counterparts,
		status:       s.Status,
		dates:        s.Dates,
		items:        s.Items,
		vehicles:     s.Vehicles,
		documents:    s.Documents,
		comments:     s.Comments,
		issuedBy:     s.IssuedBy,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (n *Note) Validate() error {
	if n == nil {
		return ErrNoteIsNotConstructed
	}
	return n.guard.Validate(ErrNoteIsNotConstructed)
}

func (n *Note) ID() kernel.SequenceID      { return n.id }
func (n *Note) Counterparts() Counterparts { return n.counterparts }
func (n *Note) Status() Status             { return n.status }
func (n *Note) Dates() Dates               { return n.dates }
func (n *Note) Comments() string           { return n.comments }
func (n *Note) IssuedBy() string           { return n.issuedBy }
func (n *Note) CreatedAt() time.Time       { return n.createdAt }
func (n *Note) UpdatedAt() time.Time       { return n.updatedAt }

func (n *Note) Items() []Item {
	return append([]Item(nil), n.items...)
}

func (n *Note) Vehicles() []Vehicle {
	return append([]Vehicle(nil), n.vehicles...)
}

func (n *Note) Documents() []Document {
	return append([]Document(nil), n.documents...)
}

// JobIDs lists the distinct jobs referenced by the items, in item order.
func (n *Note) JobIDs() []string {
	seen := make(map[string]struct{}, len(n.items))
	ids := make([]string, 0, len(n.items))
	for _, it := range n.items {
		if _, ok := seen[it.jobID]; ok {
			continue
		}
		seen[it.jobID] = struct{}{}
		ids = append(ids, it.jobID)
	}
	return ids
}

// ReplaceDocuments swaps the whole attachment list.
func (n *Note) ReplaceDocuments(docs []Document, at time.Time) error {
	cleaned := make([]Document, 0, len(docs))
	for i, d := range docs {
		d.Name = strings.TrimSpace(d.Name)
		d.Reference = strings.TrimSpace(d.Reference)
		if d.Name == "" || d.Reference == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("document %d name and reference", i))
		}
		cleaned = append(cleaned, d)
	}
	n.documents = cleaned
	n.updatedAt = at
	return nil
}

// MarkDelivered moves a Pending note to Delivered. It reports whether the
// status changed; Delivered is terminal.
func (n *Note) MarkDelivered(at time.Time) bool {
	if n.status == StatusDelivered {
		return false
	}
	n.status = StatusDelivered
	if n.dates.DeliveredOn == nil {
		delivered := at
		n.dates.DeliveredOn = &delivered
	}
	n.updatedAt = at
	return true
}
