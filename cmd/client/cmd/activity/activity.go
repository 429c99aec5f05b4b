package activity

import (
	"github.com/spf13/cobra"
)

// ActivityCmd - родительская команда для ленты событий
var ActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Лента событий",
	Long:  `Напоминания и заметки о последующем наблюдении пациентов.`,
}
