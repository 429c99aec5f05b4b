// cmd/client/cmd/sync/sync.go
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
)

var (
	syncStatus bool
	syncWatch  bool
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизация с сервером",
	Long: `Отправляет накопленный журнал изменений на сервер одним пакетом.

Сервер применяет пакет атомарно: либо сохранено всё, либо ничего.
После подтверждения временные идентификаторы заменяются постоянными.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if syncStatus {
			return showStatus(app)
		}

		if syncWatch {
			fmt.Println("Фоновая синхронизация запущена, Ctrl+C для выхода")
			app.GetSyncService().StartAutoSync(cmd.Context())
			return nil
		}

		return runSync(cmd.Context(), app)
	},
}

func runSync(ctx context.Context, app *client.App) error {
	if !app.IsAuthenticated() {
		return fmt.Errorf("требуется аутентификация. Выполните: aidpost auth login")
	}

	pending, err := app.PendingCount()
	if err != nil {
		return err
	}
	if pending == 0 {
		fmt.Println("Все изменения уже отправлены")
		return nil
	}

	fmt.Printf("Отправка %d изменений...\n", pending)

	result, err := app.Sync(ctx)
	if err != nil {
		return fmt.Errorf("ошибка синхронизации: %w", err)
	}
	if result.Skipped {
		fmt.Println("Синхронизация уже идёт, изменения уйдут текущим пакетом")
		return nil
	}

	color.Green("Синхронизация завершена")
	fmt.Printf("Время выполнения: %v\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("Отправлено: %d изменений\n", result.Uploaded)
	if result.Remapped > 0 {
		fmt.Printf("Получено постоянных идентификаторов: %d\n", result.Remapped)
	}

	return nil
}

func showStatus(app *client.App) error {
	pending, err := app.PendingCount()
	if err != nil {
		return err
	}

	fmt.Println("=== Состояние синхронизации ===")

	if pending == 0 {
		color.Green("Очередь пуста")
	} else {
		color.Yellow("В очереди: %d изменений", pending)
	}

	svc := app.GetSyncService()
	if last := svc.GetLastSyncTime(); !last.IsZero() {
		fmt.Printf("Последняя сверка: %s\n", last.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Сверок ещё не было")
	}
	if errText := svc.LastError(); errText != "" {
		color.Red("Последняя ошибка: %s", errText)
	}

	return nil
}

func init() {
	SyncCmd.Flags().BoolVar(&syncStatus, "status", false, "показать состояние очереди")
	SyncCmd.Flags().BoolVar(&syncWatch, "watch", false, "фоновая синхронизация")
}
