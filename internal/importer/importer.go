// Package importer creates projects in bulk: from sample data or from a
// folder of project directories.
package importer

import (
	"context"
	"fmt"
	"sync"

	"github.com/jxmullins/projectboard/internal/project"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent create requests.
const DefaultWorkers = 4

// Creator is the subset of the API client the importer needs.
type Creator interface {
	Create(ctx context.Context, payload project.Payload) (*project.Project, error)
}

// Failure records a payload the backend did not accept.
type Failure struct {
	Payload project.Payload
	Err     error
}

// Result summarizes a bulk create. Created keeps input order.
type Result struct {
	Created []project.Project
	Failed  []Failure
	Skipped int
}

// Total returns the number of payloads processed.
func (r Result) Total() int {
	return len(r.Created) + len(r.Failed) + r.Skipped
}

// CreateAll creates every payload with at most workers requests in flight.
// A failed create does not stop the others; invalid payloads are counted
// as failures without reaching the backend. Cancelling ctx stops work that
// has not started.
func CreateAll(ctx context.Context, c Creator, payloads []project.Payload, workers int, logger *zap.Logger) (Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	created := make([]*project.Project, len(payloads))
	var (
		mu     sync.Mutex
		failed []Failure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, payload := range payloads {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			payload := payload.Trimmed()
			if payload.Status == "" {
				payload.Status = project.StatusActive.String()
			}
			if err := payload.Validate(); err != nil {
				mu.Lock()
				failed = append(failed, Failure{Payload: payload, Err: err})
				mu.Unlock()
				return nil
			}

			p, err := c.Create(gctx, payload)
			if err != nil {
				logger.Warn("create failed", zap.String("name", payload.Name), zap.Error(err))
				mu.Lock()
				failed = append(failed, Failure{Payload: payload, Err: err})
				mu.Unlock()
				return nil
			}
			logger.Info("created project", zap.String("name", p.Name), zap.String("id", p.ID.String()))
			created[i] = p
			return nil
		})
	}

	err := g.Wait()

	var res Result
	for _, p := range created {
		if p != nil {
			res.Created = append(res.Created, *p)
		}
	}
	res.Failed = failed
	if err != nil {
		return res, fmt.Errorf("bulk create interrupted: %w", err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("bulk create interrupted: %w", ctxErr)
	}
	return res, nil
}
