package tracker

import "sync"

// Session хранит DayState одного пользователя и сериализует операции
// над ним. Обновления Telegram обрабатываются в отдельных горутинах,
// поэтому переходы одного пользователя не должны перемешиваться.
type Session struct {
	mu  sync.Mutex
	day *DayState
}

// Do выполняет fn под блокировкой сессии.
func (s *Session) Do(fn func(*DayState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.day)
}

// SessionStore — состояние всех пользователей процесса: создаётся при
// первом обращении, теряется при рестарте. Исторические данные живут
// в БД, здесь только незавершённый день.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Get возвращает сессию пользователя, создавая её при необходимости.
func (s *SessionStore) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{day: NewDayState()}
		s.sessions[userID] = sess
	}
	return sess
}
