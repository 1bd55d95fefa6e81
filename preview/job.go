package preview

import (
	"context"
	"sync"

	"konvyshop/models"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
)

// Job is a preview load running in the background. The web modal polls it
// for progress until it is done.
type Job struct {
	ID        string
	AccountID int64
	Category  models.CosmeticCategory

	cancel context.CancelFunc

	mu       sync.Mutex
	progress Progress
	result   Result
	done     bool
}

// Start launches a load. Cancel the job when the modal closes.
func Start(parent context.Context, l *Loader, accountID int64, category models.CosmeticCategory) *Job {
	ctx, cancel := context.WithCancel(parent)
	j := &Job{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Category:  category,
		cancel:    cancel,
	}

	go func() {
		defer cancel()
		res, err := l.Load(ctx, accountID, category, j.setProgress)
		if err != nil {
			logger.LogErr(err, "preview load failed", "account", accountID, "category", string(category))
		}

		j.mu.Lock()
		j.result = res
		j.done = true
		j.mu.Unlock()
	}()
	return j
}

func (j *Job) setProgress(p Progress) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if p.Loaded >= j.progress.Loaded {
		j.progress = p
	}
}

// Progress returns the latest counter.
func (j *Job) Progress() Progress {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.progress
}

// Result returns the finished preview; ok is false while loading.
func (j *Job) Result() (res Result, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.done
}

// Cancel stops a running load.
func (j *Job) Cancel() {
	j.cancel()
}
