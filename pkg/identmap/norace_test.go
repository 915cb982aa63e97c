//go:build !race

package identmap

const raceEnabled = false
