package triage

// Level — уровень срочности по итогам оценки.
type Level string

const (
	LevelEmergency Level = "emergency"
	LevelUrgent    Level = "urgent"
	LevelRoutine   Level = "routine"
)

// Request — жалобы пациента и контекст для оценки.
type Request struct {
	Symptoms string `json:"symptoms"`
	Age      int    `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// Assessment — результат оценки. Source показывает, отвечала внешняя
// служба или локальные правила.
type Assessment struct {
	Level  Level  `json:"level"`
	Advice string `json:"advice"`
	Source string `json:"source"`
}
