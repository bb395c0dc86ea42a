package repo

// TokenKey — имя единственного ключа, под которым хранится сессионный токен.
const TokenKey = "auth_token"

// TokenStore описывает абстракцию хранилища auth-токена на клиенте.
// Хранилище держит не более одного значения; пустой токен не сохраняется: Set("") эквивалентен Remove().
type TokenStore interface {
	// Get возвращает токен и признак его наличия. Отсутствие токена — не ошибка.
	Get() (string, bool, error)
	// Set перезаписывает токен.
	Set(token string) error
	// Remove удаляет токен. Удаление отсутствующего токена — не ошибка.
	Remove() error
}
