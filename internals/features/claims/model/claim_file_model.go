package model

import (
	"time"

	"github.com/google/uuid"
)

type ClaimFileModel struct {
	ClaimFileID         uuid.UUID  `gorm:"type:uuid;primaryKey;column:claim_file_id" json:"claim_file_id"`
	ClaimFileClaimID    uuid.UUID  `gorm:"type:uuid;not null;index;column:claim_file_claim_id" json:"claim_file_claim_id"`
	ClaimFileName       string     `gorm:"type:varchar(255);not null;column:claim_file_name" json:"claim_file_name"`
	ClaimFileType       string     `gorm:"type:varchar(150);not null;column:claim_file_type" json:"claim_file_type"`
	ClaimFileSize       int64      `gorm:"not null;column:claim_file_size" json:"claim_file_size"`
	ClaimFileURL        string     `gorm:"type:text;not null;column:claim_file_url" json:"claim_file_url"`
	ClaimFileObjectKey  string     `gorm:"type:text;not null;column:claim_file_object_key" json:"claim_file_object_key"`
	ClaimFileIsActive   bool       `gorm:"not null;default:true;column:claim_file_is_active" json:"claim_file_is_active"`
	ClaimFileCreateBy   uuid.UUID  `gorm:"type:uuid;not null;column:claim_file_create_by" json:"claim_file_create_by"`
	ClaimFileCreateDate time.Time  `gorm:"type:timestamptz;not null;column:claim_file_create_date" json:"claim_file_create_date"`
	ClaimFileDeletedAt  *time.Time `gorm:"type:timestamptz;column:claim_file_deleted_at" json:"claim_file_deleted_at,omitempty"`
	ClaimFilePurgedAt   *time.Time `gorm:"type:timestamptz;column:claim_file_purged_at" json:"-"`
}

func (ClaimFileModel) TableName() string { return "claim_files" }
