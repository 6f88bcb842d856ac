// Package tui drives a tour in a full-screen bubbletea program.
package tui
