// cmd/client/cmd/patient/update.go
package patient

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var (
	updateName    string
	updateGender  string
	updateVillage string
	updatePhone   string
	updateDOB     string
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить карточку пациента",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		p, err := app.UpdatePatient(args[0], client.PatientRequest{
			Name:        updateName,
			Gender:      updateGender,
			Village:     updateVillage,
			PhoneNumber: updatePhone,
			DateOfBirth: updateDOB,
		})
		if err != nil {
			return fmt.Errorf("ошибка изменения карточки: %w", err)
		}

		color.Green("Карточка обновлена: %s", client.DisplayID(p.ID))
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVar(&updateName, "name", "", "имя пациента")
	UpdateCmd.Flags().StringVar(&updateGender, "gender", "", "пол")
	UpdateCmd.Flags().StringVar(&updateVillage, "village", "", "деревня")
	UpdateCmd.Flags().StringVar(&updatePhone, "phone", "", "телефон")
	UpdateCmd.Flags().StringVar(&updateDOB, "dob", "", "дата рождения (ГГГГ-ММ-ДД)")
}
