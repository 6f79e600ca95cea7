package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ClaimLogModel is append-only: no updated_at, no deleted_at.
type ClaimLogModel struct {
	ClaimLogID          uuid.UUID         `gorm:"type:uuid;primaryKey;column:claim_log_id" json:"claim_log_id"`
	ClaimLogClaimID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_claim_logs_claim_date,priority:1;column:claim_log_claim_id" json:"claim_log_claim_id"`
	ClaimLogAction      ClaimAction       `gorm:"type:varchar(30);not null;column:claim_log_action" json:"claim_log_action"`
	ClaimLogDescription *string           `gorm:"type:text;column:claim_log_description" json:"claim_log_description,omitempty"`
	ClaimLogOldStatus   *ClaimStatus      `gorm:"type:smallint;column:claim_log_old_status" json:"claim_log_old_status"`
	ClaimLogNewStatus   ClaimStatus       `gorm:"type:smallint;not null;column:claim_log_new_status" json:"claim_log_new_status"`
	ClaimLogActionBy    uuid.UUID         `gorm:"type:uuid;not null;column:claim_log_action_by" json:"claim_log_action_by"`
	ClaimLogActionDate  time.Time         `gorm:"type:timestamptz;not null;index:idx_claim_logs_claim_date,priority:2,sort:desc;column:claim_log_action_date" json:"claim_log_action_date"`
	ClaimLogMeta        datatypes.JSONMap `gorm:"type:jsonb;column:claim_log_meta" json:"claim_log_meta,omitempty"`
}

func (ClaimLogModel) TableName() string { return "claim_logs" }
