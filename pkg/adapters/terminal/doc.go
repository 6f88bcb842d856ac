// Package terminal renders tours in a line-oriented terminal.
//
// Renderer prints each mounted step as a bordered box (lipgloss) with its
// Markdown body rendered by glamour. Confirmer asks yes/no questions on a reader,
// and Marker mirrors the active tour in the terminal title (termenv).
package terminal
