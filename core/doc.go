// Package stage runs the avatar client: it keeps one connection to the
// backend alive, queues what the backend sends and plays it back in order
// while driving captions, motions and lip-sync on the configured sinks.
//
// Frames are handled strictly one at a time by a single dispatcher. Audio
// clips block the dispatcher until playback has finished; when the clip was
// announced by a speech event carrying a waker token, the token is echoed
// back to the backend once the clip has played.
//
// Losing the connection discards everything still queued together with any
// pending waker, shows a reconnecting caption and schedules a reconnect. A
// clip that is already playing is allowed to finish.
package stage
