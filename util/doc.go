// Package util provides small helpers shared by the ssot packages.
package util
