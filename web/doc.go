// Package web is the HTTP boundary of the service: gorilla/mux routes over
// the generic CRUD services, the hello and health endpoints, request
// middleware and prometheus metrics.
package web
