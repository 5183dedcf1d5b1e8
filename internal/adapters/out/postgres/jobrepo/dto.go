package jobrepo

import (
	"time"

	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobDTO struct {
	ID            string `gorm:"type:varchar(32);primaryKey"`
	Customer      string `gorm:"type:varchar(255);not null"`
	Consignee     string `gorm:"type:varchar(255)"`
	ConsigneeCode string `gorm:"type:varchar(64)"`
	Exporter      string `gorm:"type:varchar(255)"`
	Shipper       string `gorm:"type:varchar(255)"`
	Status        string `gorm:"type:varchar(32);not null;index"`
	Progress      int    `gorm:"type:smallint;not null"`
	ClearedAt     *time.Time
	SettledAt     *time.Time
	CompletedAt   *time.Time
	CreatedBy     string `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	BillsOfLading []BillOfLadingDTO `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	Containers    []ContainerDTO    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

func (JobDTO) TableName() string {
	return "jobs"
}

type BillOfLadingDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID           string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_bl_job_master"`
	MasterNo        string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_bl_job_master"`
	HouseNo         string    `gorm:"type:varchar(64)"`
	Vessel          string    `gorm:"type:varchar(255)"`
	PortOfLoading   string    `gorm:"type:varchar(255)"`
	PortOfDischarge string    `gorm:"type:varchar(255)"`
	Position        int       `gorm:"type:smallint;not null"`
}

func (BillOfLadingDTO) TableName() string {
	return "bills_of_lading"
}

type ContainerDTO struct {
	ID       uuid.UUID                        `gorm:"type:uuid;primaryKey"`
	JobID    string                           `gorm:"type:varchar(32);not null;index"`
	Number   string                           `gorm:"type:varchar(32);not null"`
	Kind     string                           `gorm:"type:varchar(32)"`
	BLNumber string                           `gorm:"column:bl_number;type:varchar(64)"`
	Packages datatypes.JSONSlice[job.Package] `gorm:"not null"`
	Position int                              `gorm:"type:smallint;not null"`
}

func (ContainerDTO) TableName() string {
	return "containers"
}

func fromDomain(aggregate *job.Job) JobDTO {
	id := aggregate.ID().String()
	parties := aggregate.Counterparts()

	bls := make([]BillOfLadingDTO, 0, len(aggregate.BillsOfLading()))
	for i, bl := range aggregate.BillsOfLading() {
		bls = append(bls, BillOfLadingDTO{
			ID:              bl.ID().Bytes(),
			JobID:           id,
			MasterNo:        bl.MasterNo(),
			HouseNo:         bl.HouseNo(),
			Vessel:          bl.Vessel(),
			PortOfLoading:   bl.PortOfLoading(),
			PortOfDischarge: bl.PortOfDischarge(),
			Position:        i,
		})
	}

	containers := make([]ContainerDTO, 0, len(aggregate.Containers()))
	for i, c := range aggregate.Containers() {
		containers = append(containers, ContainerDTO{
			ID:       uuid.New(),
			JobID:    id,
			Number:   c.Number(),
			Kind:     c.Kind(),
			BLNumber: c.BLNumber(),
			Packages: datatypes.NewJSONSlice(c.Packages()),
			Position: i,
		})
	}

	return JobDTO{
		ID:            id,
		Customer:      parties.Customer,
		Consignee:     parties.Consignee,
		ConsigneeCode: parties.ConsigneeCode,
		Exporter:      parties.Exporter,
		Shipper:       parties.Shipper,
		Status:        aggregate.Status().String(),
		Progress:      aggregate.Progress().Int(),
		ClearedAt:     aggregate.ClearedAt(),
		SettledAt:     aggregate.SettledAt(),
		CompletedAt:   aggregate.CompletedAt(),
		CreatedBy:     aggregate.CreatedBy(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		BillsOfLading: bls,
		Containers:    containers,
	}
}

// changes lists the mutable columns of a job. Zero values must be written,
// so Updates gets a map rather than the struct.
func changes(dto JobDTO) map[string]any {
	return map[string]any{
		"consignee_code": dto.ConsigneeCode,
		"status":         dto.Status,
		"progress":       dto.Progress,
		"cleared_at":     dto.ClearedAt,
		"settled_at":     dto.SettledAt,
		"completed_at":   dto.CompletedAt,
		"updated_at":     dto.UpdatedAt,
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.ParseSequenceID(kernel.JobScope, dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := job.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	progress, err := kernel.NewProgress(dto.Progress)
	if err != nil {
		return nil, err
	}

	bls := make([]job.BillOfLading, 0, len(dto.BillsOfLading))
	for _, b := range dto.BillsOfLading {
		blID, idErr := kernel.UUIDFromGoogle(b.ID)
		if idErr != nil {
			return nil, idErr
		}
		bl, blErr := job.NewBillOfLading(blID, job.BillOfLadingParams{
			MasterNo:        b.MasterNo,
			HouseNo:         b.HouseNo,
			Vessel:          b.Vessel,
			PortOfLoading:   b.PortOfLoading,
			PortOfDischarge: b.PortOfDischarge,
		})
		if blErr != nil {
			return nil, blErr
		}
		bls = append(bls, bl)
	}

	containers := make([]job.Container, 0, len(dto.Containers))
	for _, c := range dto.Containers {
		container, cErr := job.NewContainer(c.Number, c.Kind, c.BLNumber, c.Packages)
		if cErr != nil {
			return nil, cErr
		}
		containers = append(containers, container)
	}

	return job.RestoreJob(job.Snapshot{
		ID: id,
		Counterparts: job.Counterparts{
			Customer:      dto.Customer,
			Consignee:     dto.Consignee,
			ConsigneeCode: dto.ConsigneeCode,
			Exporter:      dto.Exporter,
			Shipper:       dto.Shipper,
		},
		BLs:         bls,
		Containers:  containers,
		Status:      status,
		Progress:    progress,
		ClearedAt:   dto.ClearedAt,
		SettledAt:   dto.SettledAt,
		CompletedAt: dto.CompletedAt,
		CreatedBy:   dto.CreatedBy,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}
