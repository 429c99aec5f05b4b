package client

import (
	"context"
	"time"

	"aidpost/internal/domain/triage"
)

// Triage оценивает срочность обращения. Внешняя служба настраивается
// через конфигурацию; без неё работают локальные правила, и команда
// полезна полностью офлайн.
func (a *App) Triage(ctx context.Context, patientID, symptoms string) (*triage.Assessment, error) {
	req := triage.Request{Symptoms: symptoms}

	if patientID != "" {
		if p, err := a.storage.GetPatient(patientID); err == nil {
			req.Age = p.Age(time.Now())
			req.Gender = p.Gender
		}
	}

	var remote triage.Assessor
	if a.config.TriageAddress != "" {
		remote = triage.NewHTTPAssessor(
			a.config.TriageAddress,
			time.Duration(a.config.TriageTimeout)*time.Second,
			a.log,
		)
	}

	return triage.NewService(remote, a.log).Assess(ctx, req)
}
