package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization owns teams and decides which email domains may be invited.
type Organization struct {
	OrgID     uuid.UUID `gorm:"column:org_id;type:uuid;primaryKey" json:"org_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Tier      string    `gorm:"column:tier;not null;default:'starter'" json:"tier"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Organization) TableName() string {
	return "Organizations"
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.OrgID == uuid.Nil {
		o.OrgID = uuid.New()
	}
	return nil
}

// OrganizationApprovedDomain restricts invitations to the listed email domains.
// An organization without live rows accepts every domain.
type OrganizationApprovedDomain struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrgID     uuid.UUID  `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	Domain    string     `gorm:"column:domain;not null" json:"domain"`
	RemovedAt *time.Time `gorm:"column:removed_at" json:"removed_at"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (OrganizationApprovedDomain) TableName() string {
	return "OrganizationApprovedDomains"
}

func (d *OrganizationApprovedDomain) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
