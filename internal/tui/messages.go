package tui

type captionMsg struct {
	actorID string
	text    string
}

type titleMsg string

type clearMsg struct{}

type parameterMsg struct {
	actorID string
	paramID string
	value   float64
}

type motionMsg struct {
	actorID string
	group   string
}

type sceneMsg int

type stateMsg string

type playbackMsg struct {
	active   bool
	fraction float64
}
