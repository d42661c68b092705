// Package classification of Arena API
//
// # Documentation for Arena API
//
// Units walk the arena, score points and finish their game. Every event a
// unit fires can be watched over a websocket and is recorded into a replay.
//
// Schemes: http
// BasePath: /
// Version: 1.0.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package http

import (
	"github.com/kahvecikaan/signals/internal/domain"
	"github.com/kahvecikaan/signals/internal/recorder"
)

// NOTE: Types defined here are purely for documentation purposes
// These types are not used by any of the handlers

// Generic error message
// swagger:response errorResponse
type errorResponseWrapper struct {
	// Description of the error
	// in: body
	Body ErrorResponse
}

// Validation errors, one per failing field
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// Collection of the errors
	// in: body
	Body domain.ValidationErrors
}

// A list of units
// swagger:response unitsResponse
type unitsResponseWrapper struct {
	// All units in the arena
	// in: body
	Body []domain.UnitView
}

// A single unit
// swagger:response unitResponse
type unitResponseWrapper struct {
	// in: body
	Body domain.UnitView
}

// A recorded game
// swagger:response replayResponse
type replayResponseWrapper struct {
	// in: body
	Body recorder.Replay
}

// No content response for endpoints that return 204
// swagger:response noContentResponse
type noContentResponseWrapper struct{}

// swagger:parameters getUnit removeUnit walkUnit getReplay watchUnit
type unitIDParamsWrapper struct {
	// The ID of the unit
	// in: path
	// required: true
	ID int `json:"id"`
}

// swagger:parameters spawnUnit
type spawnBodyParamsWrapper struct {
	// in: body
	// required: true
	Body domain.SpawnRequest
}

// swagger:parameters walkUnit
type walkBodyParamsWrapper struct {
	// in: body
	// required: true
	Body domain.WalkRequest
}

// ErrorResponse defines the structure for API error responses
//
// swagger:model
type ErrorResponse struct {
	// The error message
	//
	// required: true
	Message string `json:"message"`
}
