package constants

// Role akun operator. Admin mengelola direktori & laporan;
// teacher/volunteer hanya operasional check-in harian.
const (
	RoleAdmin     = "admin"
	RoleTeacher   = "teacher"
	RoleVolunteer = "volunteer"
)

var AllRoles = []string{RoleAdmin, RoleTeacher, RoleVolunteer}

// ValidRole: cek role dikenal (dipakai saat seed / verifikasi token).
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
