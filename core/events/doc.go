// Package events defines the typed lifecycle event contract of the avatar
// client.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - playback.*
//   - connection.*
//   - ack.*
//   - frame.*
//   - scene.*
//
// playback events
//
//   - PlaybackStarted (playback.started): a decoded clip was handed to the
//     audio output.
//   - PlaybackProgress (playback.progress): point-in-time position of the
//     clip currently playing.
//   - PlaybackEnded (playback.ended): the output drained the clip.
//   - PlaybackFailed (playback.failed): the clip could not be decoded or
//     played.
//
// connection events
//
//   - ConnectionStateChanged (connection.state_changed): the supervisor
//     moved between disconnected, connecting, open and closing.
//
// ack events
//
//   - AckSent (ack.sent): a waker token was echoed back to the backend.
//   - AckForfeited (ack.forfeited): a pending waker was dropped without
//     being sent.
//
// frame events
//
//   - FrameDropped (frame.dropped): an inbound message or a queued frame was
//     discarded.
//
// scene events
//
//   - SceneChanged (scene.changed): the scene loader switched scenes.
package events
