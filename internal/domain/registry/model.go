package registry

import "time"

type CenterStatus string

const (
	CenterStatusActive   CenterStatus = "active"
	CenterStatusInactive CenterStatus = "inactive"
	CenterStatusClosed   CenterStatus = "closed"
)

type EventStatus string

const (
	EventStatusActive     EventStatus = "active"
	EventStatusMonitoring EventStatus = "monitoring"
	EventStatusResolved   EventStatus = "resolved"
)

type EvacuationCenter struct {
	ID       string       `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string       `gorm:"not null" json:"name"`
	Address  string       `json:"address"`
	Capacity int          `gorm:"not null" json:"capacity"`
	// CurrentOccupancy is materialized from open attendance records. It is
	// overwritten by reconciliation and must never go negative.
	CurrentOccupancy int          `gorm:"not null;default:0;column:current_occupancy" json:"current_occupancy"`
	Status           CenterStatus `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt        time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EvacuationCenter) TableName() string { return "evacuation_centers" }

type Event struct {
	ID         string      `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string      `gorm:"not null" json:"name"`
	Status     EventStatus `gorm:"type:varchar(16);not null" json:"status"`
	DeclaredAt time.Time   `gorm:"not null" json:"declared_at"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string { return "events" }

// CenterEvent links an event to a center it covers.
type CenterEvent struct {
	CenterID string `gorm:"type:uuid;primaryKey" json:"center_id"`
	EventID  string `gorm:"type:uuid;primaryKey" json:"event_id"`

	Center EvacuationCenter `gorm:"foreignKey:CenterID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Event  Event            `gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CenterEvent) TableName() string { return "center_events" }

type Household struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// CenterID is the home center the household is registered to.
	CenterID  string    `gorm:"type:uuid;not null;index" json:"center_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Household) TableName() string { return "households" }

type Individual struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID string     `gorm:"type:uuid;not null;index" json:"household_id"`
	FirstName   string     `gorm:"not null" json:"first_name"`
	LastName    string     `gorm:"not null" json:"last_name"`
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Sex         string     `gorm:"type:varchar(16)" json:"sex,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Household Household `gorm:"foreignKey:HouseholdID;references:ID" json:"-"`
}

func (Individual) TableName() string { return "individuals" }

// EventRef is the slice of an event the attendance engine needs.
type EventRef struct {
	ID     string      `json:"id"`
	Status EventStatus `json:"status"`
}
