package activity

import "aidpost/internal/domain/activity"

type listInput struct {
	Unread bool `query:"unread" doc:"Вернуть только непрочитанные" required:"false"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Status     string              `json:"status"`
	Activities []activity.Activity `json:"activities"`
	Error      string              `json:"error,omitempty"`
}

type createInput struct {
	Body map[string]any
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	Status   string             `json:"status"`
	Activity *activity.Activity `json:"activity,omitempty"`
	Error    string             `json:"error,omitempty"`
}

type markReadInput struct {
	ID int64 `path:"id" example:"1" doc:"ID события"`
}

type deleteInput struct {
	ID int64 `path:"id" example:"1" doc:"ID события"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
