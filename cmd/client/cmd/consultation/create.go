// cmd/client/cmd/consultation/create.go
package consultation

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var (
	createPatient  string
	createSymptoms string
	createNotes    string
	createStatus   string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Записать консультацию",
	Long: `Создаёт запись о приёме. Пациента можно указать по временному
идентификатору: связка сохранится и после синхронизации.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if createPatient == "" {
			return fmt.Errorf("укажите пациента: --patient")
		}

		c, err := app.CreateConsultation(client.ConsultationRequest{
			PatientID: createPatient,
			Symptoms:  createSymptoms,
			Notes:     createNotes,
			Status:    createStatus,
		})
		if err != nil {
			return fmt.Errorf("ошибка записи консультации: %w", err)
		}

		color.Green("Консультация записана: %s", client.DisplayID(c.ID))
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createPatient, "patient", "", "идентификатор пациента")
	CreateCmd.Flags().StringVar(&createSymptoms, "symptoms", "", "жалобы")
	CreateCmd.Flags().StringVar(&createNotes, "notes", "", "заметки")
	CreateCmd.Flags().StringVar(&createStatus, "status", "", "статус (pending/completed/cancelled)")
}
