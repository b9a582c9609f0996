package models

// цвета статусов, в шаблонах они превращаются в css классы
const (
	ColorSuccess = "success"
	ColorError   = "error"
	ColorDefault = "default"
)

var statusLabels = map[string]string{
	StatusScreeningOK:     "Скрининг резюме пройден",
	StatusScreeningFailed: "Скрининг резюме не пройден",
	StatusInterviewOK:     "Интервью пройдено",
	StatusInterviewFailed: "Интервью не пройдено",
}

// порядок статусов при сортировке таблицы, неизвестные - в конце
var statusRank = map[string]int{
	StatusScreeningOK:     1,
	StatusInterviewOK:     2,
	StatusScreeningFailed: 3,
	StatusInterviewFailed: 4,
}

const unknownStatusRank = 5

// KnownStatuses - статусы для фильтра в порядке показа
var KnownStatuses = []string{
	StatusScreeningOK,
	StatusScreeningFailed,
	StatusInterviewOK,
	StatusInterviewFailed,
}

// StatusLabel - русская подпись статуса, неизвестный статус показываем как есть
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

func StatusColor(status string) string {
	switch status {
	case StatusScreeningOK, StatusInterviewOK:
		return ColorSuccess
	case StatusScreeningFailed, StatusInterviewFailed:
		return ColorError
	default:
		return ColorDefault
	}
}

func StatusRank(status string) int {
	if rank, ok := statusRank[status]; ok {
		return rank
	}
	return unknownStatusRank
}

// ScoreColor - цвет балла от зелёного к красному
func ScoreColor(score float64) string {
	switch {
	case score >= 90:
		return "#4caf50"
	case score >= 70:
		return "#8bc34a"
	case score >= 50:
		return "#ffc107"
	case score >= 30:
		return "#ff9800"
	default:
		return "#f44336"
	}
}
