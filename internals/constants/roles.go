package constants

import "fmt"

// Role adalah varian tertutup: admin, mentor, atau siswa.
// Semua pengecekan role lewat tipe ini, bukan perbandingan string lepas.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMentor Role = "mentor"
	RoleSiswa  Role = "siswa"
)

// AllRoles untuk validasi & target pengumuman.
var AllRoles = []Role{RoleAdmin, RoleMentor, RoleSiswa}

// ParseRole menolak nilai di luar varian.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMentor:
		return RoleMentor, nil
	case RoleSiswa:
		return RoleSiswa, nil
	default:
		return "", fmt.Errorf("role tidak dikenal: %q", s)
	}
}

func (r Role) String() string { return string(r) }

// Valid true hanya untuk varian yang dikenal.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMentor, RoleSiswa:
		return true
	}
	return false
}

// Label untuk pesan ke user.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleMentor:
		return "Mentor"
	case RoleSiswa:
		return "Siswa"
	default:
		return string(r)
	}
}

// Template pesan error role
const (
	ErrOnlySiswaCanAccess   = "❌ Hanya siswa yang boleh mengakses fitur %s."
	ErrOnlyMentorsCanAccess = "❌ Hanya mentor yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorSiswa(feature string) string {
	return fmt.Sprintf(ErrOnlySiswaCanAccess, feature)
}

func RoleErrorMentor(feature string) string {
	return fmt.Sprintf(ErrOnlyMentorsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}
