package converters

import (
	"fmt"
	"strconv"
	"time"

	"hr_dashboard/internal/dashboard_server/dto"
	"hr_dashboard/internal/domain/models"
)

const dash = "—"

// даты показываем как в ru-RU: 05.03.2024
func formatDate(t time.Time) string {
	if t.IsZero() {
		return dash
	}
	return t.Format("02.01.2006")
}

func orDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}

// целые баллы без дробной части, остальные до десятых
func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return strconv.FormatInt(int64(score), 10)
	}
	return strconv.FormatFloat(score, 'f', 1, 64)
}

func scoreToDTO(score *float64) dto.Score {
	if score == nil {
		return dto.Score{Value: dash, Empty: true}
	}
	return dto.Score{Value: formatScore(*score), Color: models.ScoreColor(*score)}
}

func screeningScore(rs *models.ResumeScreening) dto.Score {
	if rs == nil {
		return scoreToDTO(nil)
	}
	score := rs.Score
	return scoreToDTO(&score)
}

// склонение: 1 вопрос, 2 вопроса, 5 вопросов, 11 вопросов, 21 вопрос
func questionsText(n int) string {
	word := "вопросов"
	switch mod100 := n % 100; {
	case mod100 >= 11 && mod100 <= 14:
	case n%10 == 1:
		word = "вопрос"
	case n%10 >= 2 && n%10 <= 4:
		word = "вопроса"
	}
	return fmt.Sprintf("%d %s", n, word)
}
