// cmd/client/cmd/init.go
package cmd

import (
	"aidpost/cmd/client/cmd/activity"
	"aidpost/cmd/client/cmd/auth"
	"aidpost/cmd/client/cmd/consultation"
	"aidpost/cmd/client/cmd/patient"
	"aidpost/cmd/client/cmd/sync"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(patient.PatientCmd)
	patient.PatientCmd.AddCommand(patient.CreateCmd)
	patient.PatientCmd.AddCommand(patient.ListCmd)
	patient.PatientCmd.AddCommand(patient.GetCmd)
	patient.PatientCmd.AddCommand(patient.UpdateCmd)
	patient.PatientCmd.AddCommand(patient.DeleteCmd)

	rootCmd.AddCommand(consultation.ConsultationCmd)
	consultation.ConsultationCmd.AddCommand(consultation.CreateCmd)
	consultation.ConsultationCmd.AddCommand(consultation.ListCmd)
	consultation.ConsultationCmd.AddCommand(consultation.UpdateCmd)
	consultation.ConsultationCmd.AddCommand(consultation.DeleteCmd)

	rootCmd.AddCommand(activity.ActivityCmd)
	activity.ActivityCmd.AddCommand(activity.ListCmd)
	activity.ActivityCmd.AddCommand(activity.ReadCmd)
	activity.ActivityCmd.AddCommand(activity.DeleteCmd)

	rootCmd.AddCommand(sync.SyncCmd)
	rootCmd.AddCommand(triageCmd)
}
