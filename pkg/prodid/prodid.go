package prodid

import (
	"fmt"
	"hash/crc32"
	"strings"
)

// Prefix de todos los IDs de producto derivados de título.
const Prefix = "prod-"

// FromTitle deriva el ID determinista de un producto a partir de su título:
// normaliza (minúsculas, sin espacios en extremos) y aplica CRC32 en hexadecimal.
// Dos títulos con la misma forma normalizada producen siempre el mismo ID,
// lo que hace idempotente la reimportación del catálogo a nivel de identidad.
func FromTitle(title string) (string, error) {
	norm := Normalize(title)
	if norm == "" {
		return "", fmt.Errorf("prodid: título vacío")
	}
	sum := crc32.ChecksumIEEE([]byte(norm))
	return Prefix + fmt.Sprintf("%x", sum), nil
}

// Normalize devuelve la forma canónica del título usada para derivar el ID.
func Normalize(title string) string {
	return strings.TrimSpace(strings.ToLower(title))
}
