// Package mcp exposes tour navigation over the Model Context Protocol, so an
// assistant can walk a user through a tour.
package mcp
