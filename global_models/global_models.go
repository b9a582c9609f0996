package globalmodels

// структура опций для работы с куки
type CookieOptions struct {
	Name     string // имя куки
	Value    string // значение
	MaxAge   int    // в секундах, 0 - сессионная кука
	Path     string // путь
	HttpOnly *bool  // nil = использовать дефолт (true)
}
