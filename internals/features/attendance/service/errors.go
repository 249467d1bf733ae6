package service

import (
	"fmt"
	"time"
)

// Error domain presensi. Controller memetakan tiap tipe ke kategori
// response berbeda (400 / 404 / 422 / 409) supaya client bisa membedakan
// "sudah check-in" (kondisi wajar) dari error sistem.

// InvalidIdentifierError: input kosong/rusak setelah normalisasi.
type InvalidIdentifierError struct {
	Raw string
}

func (e *InvalidIdentifierError) Error() string {
	return "Invalid Student ID format"
}

// MemberNotFoundError: student_id tidak terdaftar.
type MemberNotFoundError struct {
	StudentID string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("Student ID %s not found.", e.StudentID)
}

// MemberInactiveError: member ada tapi tidak berhak check-in.
type MemberInactiveError struct {
	StudentID string
	Name      string
	Status    string
}

func (e *MemberInactiveError) Error() string {
	return fmt.Sprintf("%s is not an active member (status: %s).", e.Name, e.Status)
}

// DuplicateAttendanceError: sudah ada record di hari kalender yang sama.
// Membawa nama member untuk pesan ramah di client.
type DuplicateAttendanceError struct {
	StudentID string
	Name      string
	Day       time.Time
}

func (e *DuplicateAttendanceError) Error() string {
	return fmt.Sprintf("%s has already been marked present today.", e.Name)
}
