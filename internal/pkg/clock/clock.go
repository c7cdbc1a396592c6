package clock

import "time"

// DateLayout формат календарной даты расклада
const DateLayout = "2006-01-02"

// System системные часы. Календарный день считается по UTC,
// чтобы смена даты была одинаковой для всех инстансов сервиса.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (*System) Now() time.Time {
	return time.Now().UTC()
}

func (*System) Today() string {
	return time.Now().UTC().Format(DateLayout)
}
