package court

import "time"

// Court is a bookable pista. The catalog is owned by the club's back office;
// this service only reads it.
type Court struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"nombre" json:"nombre"`
	SportType     string    `db:"tipo" json:"tipo"`
	PriceCents    int64     `db:"precio_cents" json:"precio_cents"`
	InMaintenance bool      `db:"en_mantenimiento" json:"en_mantenimiento"`
	CreatedAt     time.Time `db:"fecha_creacion" json:"fecha_creacion"`
}
