package consultation

import (
	"github.com/spf13/cobra"
)

// ConsultationCmd - родительская команда для записей о консультациях
var ConsultationCmd = &cobra.Command{
	Use:   "consultation",
	Short: "Записи о консультациях",
	Long:  `Записи о приёмах пациентов. Консультация привязана к карточке пациента.`,
}
