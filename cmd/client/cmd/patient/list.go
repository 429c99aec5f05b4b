// cmd/client/cmd/patient/list.go
package patient

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список пациентов",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		patients, err := app.ListPatients()
		if err != nil {
			return fmt.Errorf("ошибка получения списка: %w", err)
		}

		if len(patients) == 0 {
			fmt.Println("Карточек пока нет")
			return nil
		}

		pending := color.New(color.FgYellow).SprintFunc()
		now := time.Now()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tИМЯ\tВОЗРАСТ\tДЕРЕВНЯ\tСТАТУС")
		for _, p := range patients {
			status := "ok"
			if !p.Synced {
				status = pending("не отправлено")
			}
			age := ""
			if p.DateOfBirth != "" {
				age = fmt.Sprintf("%d", p.Age(now))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				client.DisplayID(p.ID), p.Name, age, p.Village, status)
		}
		return w.Flush()
	},
}
