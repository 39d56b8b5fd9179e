package models

import "time"

// Module is a bundle of videos sold as one priced unit. The Spanish field
// names are the platform's wire contract; Precio is the legacy single price
// kept for compatibility alongside the ARS/USD pair.
type Module struct {
	ModuleID    string    `json:"moduleid" bson:"moduleid"`
	Titulo      string    `json:"titulo" bson:"titulo"`
	Subtitulo   string    `json:"subtitulo" bson:"subtitulo"`
	Descripcion string    `json:"descripcion" bson:"descripcion"`
	VideoID     string    `json:"videoId" bson:"videoid"` // preview video
	Precio      float64   `json:"precio" bson:"precio"`
	PrecioARS   float64   `json:"precioARS" bson:"precio_ars"`
	PrecioUSD   float64   `json:"precioUSD" bson:"precio_usd"`
	Imagen      string    `json:"imagen" bson:"imagen"`
	Orden       int       `json:"orden" bson:"orden"`
	Activo      bool      `json:"activo" bson:"activo"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

type Video struct {
	ID          string    `json:"id" bson:"id"`
	ModuleID    string    `json:"moduleId" bson:"moduleid"`
	Titulo      string    `json:"titulo" bson:"titulo"`
	Descripcion string    `json:"descripcion" bson:"descripcion"`
	VideoID     string    `json:"videoId" bson:"videoid"` // playback id
	Precio      float64   `json:"precio" bson:"precio"`
	PrecioARS   float64   `json:"precioARS" bson:"precio_ars"`
	PrecioUSD   float64   `json:"precioUSD" bson:"precio_usd"`
	Duracion    string    `json:"duracion" bson:"duracion"` // "MM:SS"
	Orden       int       `json:"orden" bson:"orden"`
	Activo      bool      `json:"activo" bson:"activo"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
