package services

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/geo"
)

// MatrixKey identifies a base cost matrix by its inputs: point ids and exact
// coordinate bits, in order, plus the distance mode.
func MatrixKey(points []domain.GeoPoint, mode geo.Mode) string {
	h := sha256.New()
	var buf [8]byte

	h.Write([]byte(mode.String()))
	h.Write([]byte{0})
	for _, p := range points {
		h.Write([]byte(p.ID))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p.Lat))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p.Lon))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
