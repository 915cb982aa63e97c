//go:build race

package identmap

// raceEnabled shrinks the stress loops; the detector slows them roughly tenfold.
const raceEnabled = true
