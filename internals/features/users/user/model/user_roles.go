package model

// RoleModel is reference data; users.user_role stores the code.
type RoleModel struct {
	RoleCode        string  `gorm:"type:varchar(30);primaryKey;column:role_code" json:"role_code"`
	RoleName        string  `gorm:"type:varchar(100);not null;column:role_name" json:"role_name"`
	RoleDescription *string `gorm:"type:text;column:role_description" json:"role_description,omitempty"`
}

func (RoleModel) TableName() string { return "roles" }
