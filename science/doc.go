// Package science contains ranking metrics.
package science
