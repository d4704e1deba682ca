// Package lipsync turns the energy of the audio being played into a mouth
// aperture for the current speaker.
//
// While a clip plays, [Sampler] alternates two ticks: a sample tick reads the
// latest analysis window, maps its frequency energy with [Aperture] and opens
// the mouth when the value crosses the threshold, and a close tick shuts it
// again. The result is a flutter that follows speech loudness rather than a
// held pose.
package lipsync
