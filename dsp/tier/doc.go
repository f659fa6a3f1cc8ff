// Package tier holds the sparse, time-ordered target curves that drive
// resynthesis: a PitchTier of (time, Hz) points and a DurationTier of
// (time, ratio) points, plus the pure edit operations applied to them.
//
// Tiers are values. Every edit returns a new tier built from the old one;
// nothing is modified in place.
package tier
