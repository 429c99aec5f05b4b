// cmd/client/cmd/activity/read.go
package activity

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var ReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Пометить событие прочитанным",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if err := app.MarkActivityRead(args[0]); err != nil {
			return fmt.Errorf("ошибка пометки события: %w", err)
		}

		color.Green("Событие прочитано")
		return nil
	},
}
