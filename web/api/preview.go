package api

import (
	"konvyshop/models"
	"konvyshop/web/pages/dashboard"

	"github.com/rohanthewiz/rweb"
)

// PreviewDialog opens the cosmetic category choice for an account.
func PreviewDialog(ctx rweb.Context) error {
	if _, err := current(ctx); err != nil {
		return sessionMissing(ctx, err)
	}
	id, ok := itemID(ctx)
	if !ok {
		return badItem(ctx)
	}
	return writePartial(ctx, dashboard.PreviewDialog{ItemID: id})
}

// PreviewStart launches the preview load and returns the polling modal.
// Starting a new preview cancels the previous one.
func PreviewStart(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	id, ok := itemID(ctx)
	if !ok {
		return badItem(ctx)
	}

	category := models.ParseCosmeticCategory(ctx.Request().QueryParam("category"))
	job := sess.StartPreview(id, category)

	return writePartial(ctx, dashboard.PreviewModal{
		JobID:    job.ID,
		Category: category,
		Progress: job.Progress(),
	})
}

// PreviewPoll renders the current state of a preview job. An unknown job
// (closed or replaced) empties the modal root.
func PreviewPoll(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}

	job, ok := sess.PreviewJob(ctx.Request().Param("job"))
	if !ok {
		return ctx.WriteHTML("")
	}

	res, done := job.Result()
	return writePartial(ctx, dashboard.PreviewModal{
		JobID:    job.ID,
		Category: job.Category,
		Progress: job.Progress(),
		Result:   res,
		Done:     done,
	})
}

// PreviewClose cancels any running preview and empties the modal root.
func PreviewClose(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	sess.ClosePreview()
	return ctx.WriteHTML("")
}
