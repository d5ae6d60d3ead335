package repository

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

// SessionRegistry keeps live sessions and the FIFO of sessions waiting for a second player.
// It is not synchronized: callers serialize access.
type SessionRegistry struct {
	newBoard func() entity.Board

	nextID   uint64
	sessions map[string]*entity.Session
	order    []string
	waiting  []string
}

func NewSessionRegistry(newBoard func() entity.Board) *SessionRegistry {
	return &SessionRegistry{
		newBoard: newBoard,
		sessions: make(map[string]*entity.Session),
	}
}

// CreateSession - registers a fresh forming session and queues it.
func (that *SessionRegistry) CreateSession() *entity.Session {
	that.nextID++
	session := entity.NewSession(fmt.Sprintf("game%d", that.nextID), that.newBoard())

	that.sessions[session.ID] = session
	that.order = append(that.order, session.ID)
	that.waiting = append(that.waiting, session.ID)

	return session
}

// PeekWaiting - head of the wait queue, nil when nobody waits.
func (that *SessionRegistry) PeekWaiting() *entity.Session {
	if len(that.waiting) == 0 {
		return nil
	}

	return that.sessions[that.waiting[0]]
}

func (that *SessionRegistry) PopWaiting() {
	if len(that.waiting) == 0 {
		return
	}

	that.waiting = that.waiting[1:]
}

func (that *SessionRegistry) Get(id string) *entity.Session {
	return that.sessions[id]
}

// RemoveSession - forgets the session and drops it from the wait queue.
func (that *SessionRegistry) RemoveSession(id string) {
	if _, ok := that.sessions[id]; !ok {
		return
	}

	delete(that.sessions, id)
	that.order = slices.DeleteFunc(that.order, func(candidate string) bool { return candidate == id })
	that.waiting = slices.DeleteFunc(that.waiting, func(candidate string) bool { return candidate == id })
}

// Sessions - live sessions in creation order.
func (that *SessionRegistry) Sessions() []*entity.Session {
	sessions := make([]*entity.Session, 0, len(that.order))
	for _, id := range that.order {
		sessions = append(sessions, that.sessions[id])
	}

	return sessions
}

// WaitingIDs - copy of the wait queue, head first.
func (that *SessionRegistry) WaitingIDs() []string {
	return slices.Clone(that.waiting)
}

func (that *SessionRegistry) WaitingLen() int {
	return len(that.waiting)
}

func (that *SessionRegistry) Len() int {
	return len(that.sessions)
}
