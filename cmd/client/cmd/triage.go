// cmd/client/cmd/triage.go
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
	"aidpost/internal/domain/triage"
)

var (
	triagePatient  string
	triageSymptoms string
)

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Оценить срочность обращения",
	Long: `Оценивает срочность по жалобам. При доступной внешней службе
использует её, иначе — локальные правила. Работает офлайн.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if triageSymptoms == "" {
			return fmt.Errorf("опишите жалобы: --symptoms")
		}

		result, err := app.Triage(cmd.Context(), triagePatient, triageSymptoms)
		if err != nil {
			return fmt.Errorf("ошибка оценки: %w", err)
		}

		switch result.Level {
		case triage.LevelEmergency:
			color.Red("Уровень: %s", result.Level)
		case triage.LevelUrgent:
			color.Yellow("Уровень: %s", result.Level)
		default:
			color.Green("Уровень: %s", result.Level)
		}
		fmt.Printf("Рекомендация: %s\n", result.Advice)
		if result.Source == "fallback" {
			fmt.Println("(локальная оценка без внешней службы)")
		}

		return nil
	},
}

func init() {
	triageCmd.Flags().StringVar(&triagePatient, "patient", "", "идентификатор пациента")
	triageCmd.Flags().StringVar(&triageSymptoms, "symptoms", "", "жалобы")
}
