package rollover

import (
	"time"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

func buildAssignmentArchive(rows []models.PromoAssignment, quarterName string, archivedAt time.Time) []models.ArchivedAssignment {
	out := make([]models.ArchivedAssignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ArchivedAssignment{
			QuarterName:  quarterName,
			AccountID:    row.AccountID,
			PromoID:      row.PromoID,
			TargetUnits:  row.TargetUnits,
			PaymentTerms: row.PaymentTerms,
			AssignedAt:   row.AssignedAt,
			ArchivedAt:   archivedAt,
		})
	}
	return out
}

func buildTransactionArchive(rows []models.Transaction, quarterName string, archivedAt time.Time) []models.ArchivedTransaction {
	out := make([]models.ArchivedTransaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ArchivedTransaction{
			QuarterName: quarterName,
			AccountID:   row.AccountID,
			PromoID:     row.PromoID,
			RepID:       row.RepID,
			UnitsSold:   row.UnitsSold,
			SoldOn:      row.SoldOn,
			Note:        row.Note,
			ArchivedAt:  archivedAt,
		})
	}
	return out
}
