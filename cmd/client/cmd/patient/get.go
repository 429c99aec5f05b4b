// cmd/client/cmd/patient/get.go
package patient

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Показать карточку пациента",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		p, err := app.GetPatient(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:            %s\n", client.DisplayID(p.ID))
		fmt.Printf("Имя:           %s\n", p.Name)
		fmt.Printf("Пол:           %s\n", p.Gender)
		fmt.Printf("Деревня:       %s\n", p.Village)
		fmt.Printf("Телефон:       %s\n", p.PhoneNumber)
		if p.DateOfBirth != "" {
			fmt.Printf("Дата рождения: %s (%d лет)\n", p.DateOfBirth, p.Age(time.Now()))
		}
		for k, v := range p.Extra {
			fmt.Printf("%s: %v\n", k, v)
		}
		fmt.Printf("Обновлено:     %s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04"))
		if !p.Synced {
			fmt.Println("Статус:        не отправлено на сервер")
		}

		consultations, err := app.ListConsultations(p.ID)
		if err == nil && len(consultations) > 0 {
			fmt.Printf("\nКонсультации (%d):\n", len(consultations))
			for _, c := range consultations {
				fmt.Printf("  %s  [%s]  %s\n", client.DisplayID(c.ID), c.Status, c.Symptoms)
			}
		}

		return nil
	},
}
