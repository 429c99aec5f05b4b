// cmd/client/cmd/auth/login.go
package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aidpost/cmd/client/cmd/types"
	"aidpost/internal/app/client"
	"aidpost/internal/domain/user"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему Aidpost",
	Long: `Аутентификация на сервере Aidpost.

После входа токен сохраняется локально: сессия живёт месяц, и выезд в
район без связи не требует повторного входа.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		fmt.Println("=== Вход в систему ===")
		fmt.Println()

		fmt.Print("Логин: ")
		var login string
		_, _ = fmt.Scanln(&login)

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := app.Login(ctx, user.BaseRequest{
			Login:    login,
			Password: string(password),
		}); err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		color.Green("Вход выполнен успешно")

		// Сразу отправляем накопленное: обычно вход делают при связи.
		if pending, err := app.PendingCount(); err == nil && pending > 0 {
			fmt.Printf("Отправка %d несинхронизированных изменений...\n", pending)
			if _, err := app.Sync(ctx); err != nil {
				color.Yellow("Синхронизация отложена: %v", err)
			} else {
				color.Green("Данные синхронизированы")
			}
		}

		return nil
	},
}
