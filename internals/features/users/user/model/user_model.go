package model

import (
	"time"

	"github.com/google/uuid"

	"bimbelku_backend/internals/constants"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID       uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string         `gorm:"size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	FullName string         `gorm:"size:100;not null" json:"full_name" validate:"required,min=3,max=100"`
	Email    string         `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password string         `gorm:"not null" json:"-"`
	Role     constants.Role `gorm:"type:varchar(20);not null;default:'siswa'" json:"-"`
	Phone    *string        `gorm:"size:30" json:"phone,omitempty"`
	GoogleID *string        `gorm:"size:255;unique" json:"-"`
	IsActive bool           `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues memastikan nilai default sebelum simpan
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = constants.RoleSiswa
	}
}
