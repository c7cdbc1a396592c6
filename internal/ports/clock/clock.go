package clock

import "time"

// Clock источник времени и политика календарного дня.
// Вынесен в порт, чтобы поведение смены даты тестировалось без реальных часов.
type Clock interface {
	Now() time.Time
	// Today возвращает текущую календарную дату в формате YYYY-MM-DD.
	// Политика едина для всех вызовов: UTC.
	Today() string
}
