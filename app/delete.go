package app

import (
	"io"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/store"
)

// delObservations deletes all the specified observations. It requests for
// confirmation before proceeding with the operation.
func delObservations(
	w io.Writer,
	r io.Reader,
	db store.DB,
	observations []*models.Observation,
	opts tableOpts,
) error {
	if len(observations) == 0 {
		return nil
	}

	ids := make([]string, len(observations))

	for i := range observations {
		ids[i] = observations[i].ID
	}

	printObservationsTable(w, observations, opts)

	confirm(
		w,
		r,
		"The above observations will be deleted permanently. Press ENTER to proceed",
	)

	return db.DeleteObservations(ids)
}
