package stage

import "sync"

// session is the state shared between the connection and the dispatcher:
// who is speaking, which waker is owed to the backend, and what the scene
// and title currently are.
type session struct {
	mu sync.Mutex

	speaker    string
	pendingAck string
	scene      int
	title      string
}

func newSession(initialScene int) *session {
	return &session{scene: initialScene}
}

func (s *session) Speaker() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaker
}

func (s *session) setSpeaker(actorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speaker = actorID
}

// setAck stores waker as the pending acknowledgement. The previous token, if
// any, is returned; it will never be sent.
func (s *session) setAck(waker string) (previous string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, s.pendingAck = s.pendingAck, waker
	return previous
}

// takeAck returns and clears the pending acknowledgement.
func (s *session) takeAck() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	waker := s.pendingAck
	s.pendingAck = ""
	return waker, waker != ""
}

func (s *session) PendingAck() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingAck
}

func (s *session) Scene() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

func (s *session) setScene(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene = index
}

func (s *session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

func (s *session) setTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}
