// Package handlers exposes the contact pipeline over HTTP and renders every
// failure as one of the service's JSON error shapes.
package handlers
