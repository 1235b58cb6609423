package api

import (
	"strings"
	"unicode/utf8"

	"github.com/bornholm/backlog/internal/core/model"
)

const (
	TitleMinLength = 1
	TitleMaxLength = 255
)

const (
	messageTitleTooShort = "task title must be at least 1 character"
	messageTitleTooLong  = "task title must be at most 255 characters"
	messageInvalidID     = "invalid task id"
	messageInvalidStatus = "task status must be either incomplete or complete"
)

// Input shape is validated once, here at the boundary. The task manager
// only re-checks existence.

func validateTitle(title string) []Issue {
	title = strings.TrimSpace(title)

	if utf8.RuneCountInString(title) < TitleMinLength {
		return []Issue{{Path: []string{"title"}, Message: messageTitleTooShort}}
	}

	if utf8.RuneCountInString(title) > TitleMaxLength {
		return []Issue{{Path: []string{"title"}, Message: messageTitleTooLong}}
	}

	return nil
}

func validateTaskID(raw string) (model.TaskID, []Issue) {
	id, err := model.ParseTaskID(raw)
	if err != nil {
		return "", []Issue{{Path: []string{"id"}, Message: messageInvalidID}}
	}

	return id, nil
}

func validateStatus(status model.Status) []Issue {
	if !status.IsValid() {
		return []Issue{{Path: []string{"status"}, Message: messageInvalidStatus}}
	}

	return nil
}
