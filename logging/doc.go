// Package logging configures the logrus logger used by the cm command.
//
// A Logger writes every entry at or above its level to a log file opened in
// append mode and can mirror the more severe entries to a second stream,
// usually stderr. Lines look like
//
//	2024/05/01 13:45:10 stack.go[line:42] INFO: stacked 3 rows
//
// Library packages do not log. Only the command layer and components that
// accept a logrus.FieldLogger do.
package logging
