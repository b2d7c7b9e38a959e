package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeCloseForm = "form:close"

type CloseFormPayload struct {
	FormID string `json:"form_id"`
}

func NewCloseFormTask(formID string) (*asynq.Task, error) {
	payload, err := json.Marshal(CloseFormPayload{FormID: formID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCloseForm, payload), nil
}
