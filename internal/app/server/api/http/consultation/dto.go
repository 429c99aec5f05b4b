package consultation

import "aidpost/internal/domain/consultation"

type listInput struct {
	PatientID int64 `query:"patient_id" doc:"Сузить выборку до одного пациента" required:"false"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Status        string                      `json:"status"`
	Consultations []consultation.Consultation `json:"consultations"`
	Error         string                      `json:"error,omitempty"`
}

type findInput struct {
	ID int64 `path:"id" example:"1" doc:"ID консультации"`
}

type findOutput struct {
	Body findResponse
}

type findResponse struct {
	Status       string                     `json:"status"`
	Consultation *consultation.Consultation `json:"consultation,omitempty"`
	Error        string                     `json:"error,omitempty"`
}

type createInput struct {
	Body map[string]any
}

type updateInput struct {
	ID   int64 `path:"id" example:"1" doc:"ID консультации"`
	Body map[string]any
}

type deleteInput struct {
	ID int64 `path:"id" example:"1" doc:"ID консультации"`
}

type deleteOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
