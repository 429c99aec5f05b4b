package patient

import "aidpost/internal/domain/patient"

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Status   string            `json:"status"`
	Patients []patient.Patient `json:"patients"`
	Error    string            `json:"error,omitempty"`
}

type findInput struct {
	ID int64 `path:"id" example:"1" doc:"ID пациента"`
}

type findOutput struct {
	Body findResponse
}

type findResponse struct {
	Status  string           `json:"status"`
	Patient *patient.Patient `json:"patient,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type createInput struct {
	// Тело принимается как свободная карта: неизвестные поля не
	// отбрасываются, а сохраняются в side-channel записи.
	Body map[string]any
}

type updateInput struct {
	ID   int64 `path:"id" example:"1" doc:"ID пациента"`
	Body map[string]any
}

type deleteInput struct {
	ID int64 `path:"id" example:"1" doc:"ID пациента"`
}

type deleteOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
