// Package server runs the enabled transports side by side and stops them
// together, on a signal, a cancelled context or the failure of either one.
package server
