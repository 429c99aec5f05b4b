// cmd/client/cmd/patient/create.go
package patient

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var (
	createName    string
	createGender  string
	createVillage string
	createPhone   string
	createDOB     string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать карточку пациента",
	Long: `Создаёт карточку локально и ставит изменение в очередь отправки.
Постоянный номер карточки появится после синхронизации с сервером.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if createName == "" {
			return fmt.Errorf("укажите имя пациента: --name")
		}

		p, err := app.CreatePatient(client.PatientRequest{
			Name:        createName,
			Gender:      createGender,
			Village:     createVillage,
			PhoneNumber: createPhone,
			DateOfBirth: createDOB,
		})
		if err != nil {
			return fmt.Errorf("ошибка создания карточки: %w", err)
		}

		color.Green("Карточка создана: %s", client.DisplayID(p.ID))
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createName, "name", "", "имя пациента")
	CreateCmd.Flags().StringVar(&createGender, "gender", "", "пол")
	CreateCmd.Flags().StringVar(&createVillage, "village", "", "деревня")
	CreateCmd.Flags().StringVar(&createPhone, "phone", "", "телефон")
	CreateCmd.Flags().StringVar(&createDOB, "dob", "", "дата рождения (ГГГГ-ММ-ДД)")
}
