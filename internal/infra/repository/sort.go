package repository

import (
	"slices"
	"strings"

	"github.com/R4F43R/barbapp/internal/models"
)

func sortChronologically(apps []models.Appointment) {
	slices.SortStableFunc(apps, func(a, b models.Appointment) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
