package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mms_backend/internals/features/members/model"
)

// GormMemberRepository: akses read-only direktori member untuk service presensi.
// CRUD member ada di controller members (admin).
type GormMemberRepository struct {
	DB *gorm.DB
}

func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{DB: db}
}

// FindByStudentID: lookup exact match; (nil, nil) jika tidak ada.
func (r *GormMemberRepository) FindByStudentID(ctx context.Context, studentID string) (*model.MemberModel, error) {
	var m model.MemberModel
	err := r.DB.WithContext(ctx).
		Where("member_student_id = ?", studentID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// CountActive: jumlah member berstatus Active (pembagi persentase stats).
func (r *GormMemberRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.MemberModel{}).
		Where("member_status = ?", model.StatusActive).
		Count(&n).Error
	return n, err
}
