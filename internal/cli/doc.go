// Package cli implements the interactive commands of the tourguide binary.
package cli
