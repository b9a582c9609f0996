package vacancy_draft

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type ActionKind string

const (
	ActionAddSkill       ActionKind = "add_skill"
	ActionRemoveSkill    ActionKind = "remove_skill"
	ActionAddQuestion    ActionKind = "add_question"
	ActionRemoveQuestion ActionKind = "remove_question"
	ActionSubmit         ActionKind = "submit"
)

var ErrUnknownAction = errors.New("unknown form action")

// Action - кнопка формы, которой её отправили.
// Index имеет смысл только для remove_*
type Action struct {
	Kind  ActionKind
	Index int
}

// ParseAction разбирает значение кнопки: "add_skill", "remove_skill:2", ...
// Пустое значение - это submit (отправка формы по Enter)
func ParseAction(raw string) (Action, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Action{Kind: ActionSubmit}, nil
	}

	name, arg, hasArg := strings.Cut(raw, ":")
	kind := ActionKind(name)

	switch kind {
	case ActionAddSkill, ActionAddQuestion, ActionSubmit:
		if hasArg {
			return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
		}
		return Action{Kind: kind}, nil
	case ActionRemoveSkill, ActionRemoveQuestion:
		if !hasArg {
			return Action{}, fmt.Errorf("%w: %q has no index", ErrUnknownAction, raw)
		}
		i, err := strconv.Atoi(arg)
		if err != nil || i < 0 {
			return Action{}, fmt.Errorf("%w: bad index in %q", ErrUnknownAction, raw)
		}
		return Action{Kind: kind, Index: i}, nil
	}

	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
}

// Apply выполняет действие над формой и сообщает, изменилась ли она.
// Submit форму не меняет
func (d *Draft) Apply(a Action) bool {
	switch a.Kind {
	case ActionAddSkill:
		return d.AddSkill()
	case ActionRemoveSkill:
		return d.RemoveSkill(a.Index)
	case ActionAddQuestion:
		d.AddQuestion()
		return true
	case ActionRemoveQuestion:
		return d.RemoveQuestion(a.Index)
	}
	return false
}

func (a Action) String() string {
	switch a.Kind {
	case ActionRemoveSkill, ActionRemoveQuestion:
		return string(a.Kind) + ":" + strconv.Itoa(a.Index)
	}
	return string(a.Kind)
}
