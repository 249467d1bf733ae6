package service

import "strings"

// Pemisah field di payload QR kartu ID. Hanya token pertama yang
// dianggap student_id kanonik.
const identifierDelimiter = "|"

// NormalizeStudentID mengambil token sebelum pipe pertama dan trim whitespace.
// "S00123|Arjun|5" dan "S00123" menghasilkan identifier yang sama.
func NormalizeStudentID(raw string) (string, error) {
	token, _, _ := strings.Cut(raw, identifierDelimiter)
	token = strings.TrimSpace(token)
	if token == "" {
		return "", &InvalidIdentifierError{Raw: raw}
	}
	return token, nil
}
