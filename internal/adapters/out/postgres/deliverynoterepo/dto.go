package deliverynoterepo

import (
	"time"

	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NoteDTO struct {
	ID          string                                     `gorm:"type:varchar(32);primaryKey"`
	Customer    string                                     `gorm:"type:varchar(255)"`
	Consignee   string                                     `gorm:"type:varchar(255)"`
	Exporter    string                                     `gorm:"type:varchar(255)"`
	Shipper     string                                     `gorm:"type:varchar(255)"`
	Status      string                                     `gorm:"type:varchar(16);not null"`
	IssuedOn    time.Time                                  `gorm:"type:date;not null"`
	DeliveredOn *time.Time                                 `gorm:"type:date"`
	Documents   datatypes.JSONSlice[deliverynote.Document] `gorm:"not null"`
	Comments    string                                     `gorm:"type:text"`
	IssuedBy    string                                     `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items    []ItemDTO    `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
	Vehicles []VehicleDTO `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}

func (NoteDTO) TableName() string {
	return "delivery_notes"
}

// ItemDTO links a note to a job and, when known, to the clearance schedule
// of the delivered bill of lading.
type ItemDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	NoteID     string     `gorm:"type:varchar(32);not null;index"`
	JobID      string     `gorm:"type:varchar(32);not null;index"`
	ScheduleID *uuid.UUID `gorm:"type:uuid;index"`
	Shortage   int        `gorm:"type:int;not null"`
	Damage     int        `gorm:"type:int;not null"`
	Remarks    string     `gorm:"type:text"`
	Position   int        `gorm:"type:smallint;not null"`
}

func (ItemDTO) TableName() string {
	return "delivery_note_items"
}

type VehicleDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	NoteID   string    `gorm:"type:varchar(32);not null;index"`
	PlateNo  string    `gorm:"type:varchar(32);not null"`
	Driver   string    `gorm:"type:varchar(255)"`
	Phone    string    `gorm:"type:varchar(32)"`
	Position int       `gorm:"type:smallint;not null"`
}

func (VehicleDTO) TableName() string {
	return "delivery_note_vehicles"
}

func fromDomain(aggregate *deliverynote.Note) NoteDTO {
	id := aggregate.ID().String()
	parties := aggregate.Counterparts()
	dates := aggregate.Dates()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		var scheduleID *uuid.UUID
		if item.ScheduleID() != nil {
			raw := item.ScheduleID().Bytes()
			scheduleID = &raw
		}
		items = append(items, ItemDTO{
			ID:         item.ID().Bytes(),
			NoteID:     id,
			JobID:      item.JobID(),
			ScheduleID: scheduleID,
			Shortage:   item.Shortage(),
			Damage:     item.Damage(),
			Remarks:    item.Remarks(),
			Position:   i,
		})
	}

	vehicles := make([]VehicleDTO, 0, len(aggregate.Vehicles()))
	for i, v := range aggregate.Vehicles() {
		vehicles = append(vehicles, VehicleDTO{
			ID:       uuid.New(),
			NoteID:   id,
			PlateNo:  v.PlateNo,
			Driver:   v.Driver,
			Phone:    v.Phone,
			Position: i,
		})
	}

	return NoteDTO{
		ID:          id,
		Customer:    parties.Customer,
		Consignee:   parties.Consignee,
		Exporter:    parties.Exporter,
		Shipper:     parties.Shipper,
		Status:      string(aggregate.Status()),
		IssuedOn:    dates.IssuedOn,
		DeliveredOn: dates.DeliveredOn,
		Documents:   datatypes.NewJSONSlice(aggregate.Documents()),
		Comments:    aggregate.Comments(),
		IssuedBy:    aggregate.IssuedBy(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		Items:       items,
		Vehicles:    vehicles,
	}
}

// changes lists what may change after issue. Items and vehicles are fixed.
func changes(dto NoteDTO) map[string]any {
	return map[string]any{
		"status":       dto.Status,
		"delivered_on": dto.DeliveredOn,
		"documents":    dto.Documents,
		"updated_at":   dto.UpdatedAt,
	}
}

func toDomain(dto NoteDTO) (*deliverynote.Note, error) {
	id, err := kernel.ParseSequenceID(kernel.DeliveryNoteScope, dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := deliverynote.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]deliverynote.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		itemID, idErr := kernel.UUIDFromGoogle(i.ID)
		if idErr != nil {
			return nil, idErr
		}
		var scheduleID *kernel.UUID
		if i.ScheduleID != nil {
			sID, sErr := kernel.UUIDFromGoogle(*i.ScheduleID)
			if sErr != nil {
				return nil, sErr
			}
			scheduleID = &sID
		}
		items = append(items, deliverynote.RestoreItem(itemID, i.JobID, scheduleID, i.Shortage, i.Damage, i.Remarks))
	}

	vehicles := make([]deliverynote.Vehicle, 0, len(dto.Vehicles))
	for _, v := range dto.Vehicles {
		vehicles = append(vehicles, deliverynote.Vehicle{PlateNo: v.PlateNo, Driver: v.Driver, Phone: v.Phone})
	}

	return deliverynote.RestoreNote(deliverynote.Snapshot{
		ID: id,
		Counterparts: deliverynote.Counterparts{
			Customer:  dto.Customer,
			Consignee: dto.Consignee,
			Exporter:  dto.Exporter,
			Shipper:   dto.Shipper,
		},
		Status:    status,
		Dates:     deliverynote.Dates{IssuedOn: dto.IssuedOn, DeliveredOn: dto.DeliveredOn},
		Items:     items,
		Vehicles:  vehicles,
		Documents: dto.Documents,
		Comments:  dto.Comments,
		IssuedBy:  dto.IssuedBy,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
