// cmd/client/cmd/activity/list.go
package activity

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var listUnread bool

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список событий",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		activities, err := app.ListActivities(listUnread)
		if err != nil {
			return fmt.Errorf("ошибка получения ленты: %w", err)
		}

		if len(activities) == 0 {
			fmt.Println("Событий нет")
			return nil
		}

		unread := color.New(color.FgCyan, color.Bold).SprintFunc()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tТИП\tСООБЩЕНИЕ\tПАЦИЕНТ")
		for _, a := range activities {
			message := a.Message
			if !a.Read {
				message = unread(message)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				client.DisplayID(a.ID), a.Type, message, client.DisplayID(a.PatientID))
		}
		return w.Flush()
	},
}

func init() {
	ListCmd.Flags().BoolVar(&listUnread, "unread", false, "только непрочитанные")
}
