// Package loam loads tour definitions from a directory of documents.
//
// Every Markdown, YAML or JSON document in the directory is a step: its
// frontmatter carries the step fields (id, title, order, attach_to, show_on,
// classes, buttons) and a Markdown body becomes the step text. One optional
// document may hold tour-level settings under a "tour" key:
//
//	---
//	tour:
//	  name: welcome
//	  confirm_cancel: true
//	---
//
// Steps are ordered by their "order" field, then by id.
package loam
