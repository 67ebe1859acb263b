package reservation

import "time"

// Reservation states, stored with the values the club's original system used.
const (
	StatusPending   = "pendiente"
	StatusPaid      = "pagado"
	StatusCancelled = "cancelada"
)

// activeStates are the states that block a slot. Cancelled reservations never
// conflict, so a cancelled slot can be rebooked immediately.
var activeStates = []string{StatusPending, StatusPaid}

type Reservation struct {
	ID            int64     `db:"id" json:"id"`
	CourtID       int64     `db:"pista" json:"pista"`
	RequesterID   string    `db:"dni_usuario" json:"dni_usuario"`
	RequesterName string    `db:"nombre_usuario" json:"nombre_usuario"`
	Date          string    `db:"fecha" json:"fecha"`
	StartTime     string    `db:"hora_inicio" json:"hora_inicio"`
	EndTime       string    `db:"hora_fin" json:"hora_fin"`
	Childcare     bool      `db:"ludoteca" json:"ludoteca"`
	Status        string    `db:"estado" json:"estado"`
	PriceCents    int64     `db:"precio_cents" json:"precio_cents"`
	CreatedAt     time.Time `db:"fecha_creacion" json:"fecha_creacion"`
}

// ReservationWithCourt denormalizes the court name and sport type the way
// every read in the old system did.
type ReservationWithCourt struct {
	Reservation
	CourtName string `db:"nombre_pista" json:"nombre_pista"`
	CourtType string `db:"tipo_pista" json:"tipo_pista"`
}

// CreateRequest is the booking request body. Requester identity is filled in
// by the handler from the authenticated token, never by the client.
type CreateRequest struct {
	RequesterID   string `json:"-"`
	RequesterName string `json:"-"`
	CourtID       int64  `json:"pista" binding:"required,gt=0"`
	Date          string `json:"fecha" binding:"required"`
	StartTime     string `json:"hora_inicio" binding:"required"`
	EndTime       string `json:"hora_fin" binding:"required"`
	Childcare     bool   `json:"ludoteca"`
}

// Filter narrows listings by requester and/or court. Zero values match all.
type Filter struct {
	RequesterID string
	CourtID     int64
}

// DeleteSummary is what an administrative hard delete echoes back.
type DeleteSummary struct {
	ID         int64  `db:"id" json:"id"`
	CourtName  string `db:"nombre_pista" json:"nombre_pista"`
	Date       string `db:"fecha" json:"fecha"`
	PriceCents int64  `db:"precio_cents" json:"precio_cents"`
	Status     string `db:"estado" json:"estado"`
}
