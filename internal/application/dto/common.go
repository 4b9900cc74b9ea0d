package dto

import "github.com/shopspring/decimal"

func init() {
	// Cantidades y montos viajan como números JSON (no strings) para el cliente SPA.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
