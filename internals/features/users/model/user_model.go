package model

import "time"

// UserModel: akun login operator (admin/teacher/volunteer).
// Penerbitan token ada di layer session eksternal; tabel ini hanya
// di-seed + diverifikasi, tidak ada endpoint register/login di sini.
type UserModel struct {
	UserID       string `gorm:"column:user_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	UserUsername string `gorm:"column:user_username;type:varchar(50);uniqueIndex;not null"`
	UserPassword string `gorm:"column:user_password;type:varchar(255);not null"` // bcrypt hash
	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:'admin'"`
	UserIsActive bool   `gorm:"column:user_is_active;not null;default:true"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}
