package patient

import (
	"github.com/spf13/cobra"
)

// PatientCmd - родительская команда для работы с карточками пациентов
var PatientCmd = &cobra.Command{
	Use:   "patient",
	Short: "Карточки пациентов",
	Long:  `Создание, просмотр и правка карточек пациентов. Все операции работают офлайн.`,
}
