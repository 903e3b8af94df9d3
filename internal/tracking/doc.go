// Package tracking is the plant-tracking schedule engine.
//
// An assignment is followed for three months with eight photo checkpoints:
// weekly in month 1 (weeks 1-4), then bi-weekly in months 2 and 3
// (weeks 6, 8 and 10, 12). This package holds the pure parts of that
// engine: the checkpoint cadence, statistics, completion percentage and the
// display labels. Persistence and transactions live in the service layer.
package tracking
