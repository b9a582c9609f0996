package dto

// Banner - уведомление вверху страницы
type Banner struct {
	Kind    string // success, error, info, warning
	Message string
}

// Layout - общая часть всех страниц: меню, оператор, уведомления
type Layout struct {
	Title       string
	Active      string // путь активного пункта меню
	Operator    string
	Banners     []Banner
	BackendDown bool
	RequestID   string
}

// Page - то, что получает шаблон: общая часть плюс данные страницы
type Page struct {
	Layout
	Content any
}

type LoginPage struct {
	DevMode bool
}

// ErrorPage - страница-заглушка: не найдено или упало
type ErrorPage struct {
	Heading   string
	Message   string
	BackURL   string
	BackLabel string
}

// SortHeader - заголовок колонки, по клику переходим к следующей сортировке
type SortHeader struct {
	Label     string
	URL       string
	Indicator string // ▲, ▼ или пусто
}

type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

// Score - балл в таблице или "—"
type Score struct {
	Value string
	Color string
	Empty bool
}

type CandidateRow struct {
	FullName     string
	VacancyTitle string
	City         string
	StatusLabel  string
	StatusColor  string
	Screening    Score
	Interview    Score
	AppliedAt    string
	Archived     bool
	DetailsURL   string
	ArchiveURL   string
}

type CandidatesPage struct {
	Query        string
	Status       string
	ShowArchived bool
	Sort         string
	Order        string
	Statuses     []StatusOption
	Headers      []SortHeader
	Rows         []CandidateRow
	Shown        int
	Loaded       int
}

type AnswerView struct {
	Number    int
	Question  string
	Reference string
	TimeLimit int
	Answered  bool
	OnTime    bool
	Content   string
	Score     Score
	TimeTaken int
}

type CandidateDetailsPage struct {
	Found             bool
	FullName          string
	Archived          bool
	AppliedAt         string
	VacancyTitle      string
	City              string
	Phone             string
	Telegram          string
	StatusLabel       string
	StatusColor       string
	Screening         Score
	ScreeningFeedback string
	Interview         Score
	Answers           []AnswerView
	ArchiveURL        string
}

type VacancyCard struct {
	ID            string
	Title         string
	CreatedAt     string
	Skills        []string
	QuestionCount int
	QuestionsText string // "3 вопроса"
	BotLink       string
	DeleteURL     string
}

type VacanciesPage struct {
	Vacancies []VacancyCard
}

type QuestionField struct {
	Number       int
	Content      string
	Reference    string
	TimeLimit    int
	ContentError string
	TimeError    string
	RemoveAction string
	CanRemove    bool
}

type CreateVacancyPage struct {
	ID          string
	Title       string
	TitleError  string
	SkillInput  string
	Skills      []string
	SkillsError string
	Questions   []QuestionField
	BotLink     string
	MinTime     int
	MaxTime     int
	Valid       bool
}

// HealthResponse - ответ /health
type HealthResponse struct {
	Status       string `json:"status"`
	Backend      string `json:"backend"`
	BreakerState string `json:"breaker_state"`
	LastCheck    string `json:"last_check,omitempty"`
	LatencyMs    int64  `json:"latency_ms"`
	Error        string `json:"error,omitempty"`
	JournalQueue int    `json:"journal_queue"`
}
