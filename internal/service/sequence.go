package service

import "sync/atomic"

// Sequence выдаёт уникальные, строго возрастающие идентификаторы запросов.
// Создаётся один раз при старте и передаётся в GreetingService.
// Первый вызов Next возвращает 1.
type Sequence struct {
	val atomic.Int64
}

// NewSequence создаёт генератор, начинающий с 0
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next атомарно увеличивает счётчик и возвращает новое значение
func (s *Sequence) Next() int64 {
	return s.val.Add(1)
}

// Current возвращает последнее выданное значение (0, если Next ещё не вызывался)
func (s *Sequence) Current() int64 {
	return s.val.Load()
}
