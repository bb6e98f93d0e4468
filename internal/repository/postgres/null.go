package postgres

import (
	"database/sql"
	"time"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
)

// Helpers for mapping optional domain fields onto nullable columns.

func coordLat(c *domain.Coordinates) *float64 {
	if c == nil {
		return nil
	}
	return &c.Lat
}

func coordLng(c *domain.Coordinates) *float64 {
	if c == nil {
		return nil
	}
	return &c.Lng
}

// floatPtrFromZero treats zero as unset. Distance zero means "not measured".
func floatPtrFromZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func nullInt(v int) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(v), Valid: true}
}
