package domain

import "errors"

var (
	// ErrMissingUserID запрос без Telegram ID, отклоняется до любых внешних вызовов
	ErrMissingUserID = errors.New("telegram id is required")

	// ErrNotFound запись не найдена в хранилище
	ErrNotFound = errors.New("not found")

	// ErrReadingExists нарушение уникальности (user_id, date): расклад на сегодня уже есть
	ErrReadingExists = errors.New("reading already exists for this date")

	// ErrMissingField в ответе модели не хватает обязательного поля
	ErrMissingField = errors.New("missing required field")
)

// ConfigError ошибка конфигурации сервиса (например, отсутствует API-ключ).
// Отдаётся клиенту как 500 ещё до обращения к внешним сервисам.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func WrapConfigError(err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Err: err}
}

func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}
