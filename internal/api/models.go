package api

import "github.com/phrazzld/worldbench/internal/domain"

// HelloWorld is the fixed body of /plaintext and /json.
const HelloWorld = "Hello, World!"

// MessageResponse is the body of the /json endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// fortunesPage is the data rendered by the fortunes template.
type fortunesPage struct {
	Fortunes []*domain.Fortune
}
