package core

import (
	"net/http"
)

// Route binds one HTTP method and path to a handler
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Bundle groups the routes of one feature area
type Bundle interface {
	GetRoutes() []Route
}
