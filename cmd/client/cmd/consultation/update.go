// cmd/client/cmd/consultation/update.go
package consultation

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var (
	updateSymptoms string
	updateNotes    string
	updateStatus   string
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить запись о консультации",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		c, err := app.UpdateConsultation(args[0], client.ConsultationRequest{
			Symptoms: updateSymptoms,
			Notes:    updateNotes,
			Status:   updateStatus,
		})
		if err != nil {
			return fmt.Errorf("ошибка изменения записи: %w", err)
		}

		color.Green("Запись обновлена: %s", client.DisplayID(c.ID))
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVar(&updateSymptoms, "symptoms", "", "жалобы")
	UpdateCmd.Flags().StringVar(&updateNotes, "notes", "", "заметки")
	UpdateCmd.Flags().StringVar(&updateStatus, "status", "", "статус (pending/completed/cancelled)")
}
