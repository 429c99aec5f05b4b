// cmd/client/cmd/consultation/list.go
package consultation

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var listPatient string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список консультаций",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		consultations, err := app.ListConsultations(listPatient)
		if err != nil {
			return fmt.Errorf("ошибка получения списка: %w", err)
		}

		if len(consultations) == 0 {
			fmt.Println("Консультаций пока нет")
			return nil
		}

		pending := color.New(color.FgYellow).SprintFunc()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tПАЦИЕНТ\tЖАЛОБЫ\tСТАТУС\tСИНХР")
		for _, c := range consultations {
			syncStatus := "ok"
			if !c.Synced {
				syncStatus = pending("нет")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				client.DisplayID(c.ID), client.DisplayID(c.PatientID),
				c.Symptoms, c.Status, syncStatus)
		}
		return w.Flush()
	},
}

func init() {
	ListCmd.Flags().StringVar(&listPatient, "patient", "", "фильтр по пациенту")
}
