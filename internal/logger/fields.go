// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package logger

// Standard field names for structured logging.
const (
	FieldFile       = "file"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldFormat     = "format"
	FieldCount      = "count"
	FieldGroups     = "groups"
	FieldCyclic     = "cyclic"
	FieldEvent      = "event"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)
