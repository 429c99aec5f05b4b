// cmd/client/cmd/activity/delete.go
package activity

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить событие",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if err := app.DeleteActivity(args[0]); err != nil {
			return fmt.Errorf("ошибка удаления события: %w", err)
		}

		color.Green("Событие удалено")
		return nil
	},
}
