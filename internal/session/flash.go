package session

// FlashLevel categorizes a flash message for styling.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashInfo    FlashLevel = "info"
	FlashWarning FlashLevel = "warning"
	FlashDanger  FlashLevel = "danger"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Level   FlashLevel
	Message string
}

// AddFlash queues a notice on the session.
func (s *Session) AddFlash(level FlashLevel, message string) {
	s.flashes = append(s.flashes, Flash{Level: level, Message: message})
}

// PopFlashes returns queued notices and clears the queue.
func (s *Session) PopFlashes() []Flash {
	out := s.flashes
	s.flashes = nil
	return out
}
