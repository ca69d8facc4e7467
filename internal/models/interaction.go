package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InteractionKind — вид действия пользователя над статьёй.
type InteractionKind string

const (
	InteractionView    InteractionKind = "view"
	InteractionClick   InteractionKind = "click"
	InteractionSave    InteractionKind = "save"
	InteractionLike    InteractionKind = "like"
	InteractionDislike InteractionKind = "dislike"
	InteractionShare   InteractionKind = "share"
)

var interactionKinds = map[InteractionKind]struct{}{
	InteractionView:    {},
	InteractionClick:   {},
	InteractionSave:    {},
	InteractionLike:    {},
	InteractionDislike: {},
	InteractionShare:   {},
}

// ParseInteractionKind валидирует строковое представление вида взаимодействия.
func ParseInteractionKind(s string) (InteractionKind, error) {
	kind := InteractionKind(s)
	if _, ok := interactionKinds[kind]; !ok {
		return "", fmt.Errorf("unknown interaction kind %q", s)
	}

	return kind, nil
}

// Valid — true для известного вида взаимодействия.
func (k InteractionKind) Valid() bool {
	_, ok := interactionKinds[k]
	return ok
}

// Interaction — запись журнала действий.
//
// Инварианты:
//   - журнал append-only: записи не изменяются и не удаляются;
//   - уникальности нет — одно и то же действие может повторяться.
type Interaction struct {
	ID        uuid.UUID
	Identity  Identity
	ArticleID uuid.UUID
	Kind      InteractionKind
	CreatedAt time.Time
}
