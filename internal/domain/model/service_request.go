package model

import "time"

type ServiceType string

const (
	ServiceTypeRepair       ServiceType = "REPAIR"
	ServiceTypeMaintenance  ServiceType = "MAINTENANCE"
	ServiceTypeInstallation ServiceType = "INSTALLATION"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeRepair, ServiceTypeMaintenance, ServiceTypeInstallation:
		return true
	}
	return false
}

type ServiceStatus string

const (
	ServiceStatusPending    ServiceStatus = "PENDING"
	ServiceStatusReviewing  ServiceStatus = "REVIEWING"
	ServiceStatusQuoted     ServiceStatus = "QUOTED"
	ServiceStatusQuoteSent  ServiceStatus = "QUOTE_SENT"
	ServiceStatusApproved   ServiceStatus = "APPROVED"
	ServiceStatusInProgress ServiceStatus = "IN_PROGRESS"
	ServiceStatusCompleted  ServiceStatus = "COMPLETED"
	ServiceStatusCancelled  ServiceStatus = "CANCELLED"
)

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceStatusPending, ServiceStatusReviewing, ServiceStatusQuoted,
		ServiceStatusQuoteSent, ServiceStatusApproved, ServiceStatusInProgress,
		ServiceStatusCompleted, ServiceStatusCancelled:
		return true
	}
	return false
}

func (s ServiceStatus) Frozen() bool {
	return s == ServiceStatusCompleted || s == ServiceStatusCancelled
}

type ServicePriority string

const (
	ServicePriorityLow    ServicePriority = "LOW"
	ServicePriorityMedium ServicePriority = "MEDIUM"
	ServicePriorityHigh   ServicePriority = "HIGH"
	ServicePriorityUrgent ServicePriority = "URGENT"
)

func (p ServicePriority) Valid() bool {
	switch p {
	case ServicePriorityLow, ServicePriorityMedium, ServicePriorityHigh, ServicePriorityUrgent:
		return true
	}
	return false
}

// 修理・メンテ・設置の依頼チケット
type ServiceRequest struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketNumber string      `gorm:"type:varchar(40);not null;uniqueIndex" json:"ticket_number"`
	UserID       int64       `gorm:"not null;index" json:"user_id"`
	ServiceType  ServiceType `gorm:"type:varchar(20);not null" json:"service_type"`

	ContactName  string `gorm:"type:varchar(255);not null" json:"contact_name"`
	ContactPhone string `gorm:"type:varchar(30);not null" json:"contact_phone"`
	ContactEmail string `gorm:"type:varchar(255)" json:"contact_email"`
	Address      string `gorm:"type:text" json:"address"`

	ProblemDescription string `gorm:"type:text;not null" json:"problem_description"`

	GeneratorBrand  string `gorm:"type:varchar(100)" json:"generator_brand"`
	GeneratorModel  string `gorm:"type:varchar(100)" json:"generator_model"`
	GeneratorSerial string `gorm:"type:varchar(100)" json:"generator_serial"`

	//アップロード済み画像URL（カンマ区切り、アップロード自体は外部）
	ImageURLs string `gorm:"type:text" json:"image_urls"`

	Status   ServiceStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority ServicePriority `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`

	EstimatedCost *int64     `json:"estimated_cost"`
	FinalCost     *int64     `json:"final_cost"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Diagnosis     string     `gorm:"type:text" json:"diagnosis"`
	AdminNotes    string     `gorm:"type:text" json:"admin_notes"`
	InternalNotes string     `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
