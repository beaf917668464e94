// Package keylock реализует набор мьютексов, разделённых по ключу.
// Используется для сериализации мутаций подписки одного пользователя:
// два одновременных подтверждения оплаты не должны гонять продление.
package keylock

import "sync"

// KeyLock выдаёт мьютекс на произвольный int64-ключ.
// Мьютексы создаются лениво и не освобождаются: число
// пользователей бота на порядки меньше, чем память под sync.Mutex.
type KeyLock struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// New создаёт пустой KeyLock.
func New() *KeyLock {
	return &KeyLock{locks: make(map[int64]*sync.Mutex)}
}

// Lock захватывает мьютекс ключа key и возвращает функцию освобождения.
//
//	unlock := kl.Lock(userID)
//	defer unlock()
func (kl *KeyLock) Lock(key int64) func() {
	kl.mu.Lock()
	l, ok := kl.locks[key]
	if !ok {
		l = &sync.Mutex{}
		kl.locks[key] = l
	}
	kl.mu.Unlock()

	l.Lock()
	return l.Unlock
}
