package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"obligation-engine/internal/domain/member"
	"obligation-engine/internal/domain/obligation"
	"obligation-engine/internal/infrastructure/monitoring"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// ReconciliationJob re-runs the engine over every approved obligation. It
// closes obligations that are fully paid and keeps each member's overdue flag
// in line with their open schedules.
type ReconciliationJob struct {
	obligationService obligation.ObligationService
	memberService     member.MemberService
	concurrency       int
	now               func() time.Time
	logger            *slog.Logger
}

func NewReconciliationJob(
	obligationSvc obligation.ObligationService,
	memberSvc member.MemberService,
	concurrency int,
	logger *slog.Logger,
) *ReconciliationJob {
	if obligationSvc == nil || memberSvc == nil || logger == nil {
		panic("ReconciliationJob dependencies cannot be nil")
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &ReconciliationJob{
		obligationService: obligationSvc,
		memberService:     memberSvc,
		concurrency:       concurrency,
		now:               time.Now,
		logger:            logger.With("job", "Reconciliation"),
	}
}

func (j *ReconciliationJob) Run(ctx context.Context) error {
	startTime := time.Now()
	asOf := j.now()
	j.logger.InfoContext(ctx, "Starting obligation reconciliation job.", slog.Time("asOf", asOf))

	approved, err := j.obligationService.ListObligationsByStatus(ctx, obligation.StatusApproved)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list approved obligations, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list approved obligations: %w", err)
	}

	statements, err := j.obligationService.Statements(ctx, approved, asOf)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to reconcile approved obligations, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to reconcile obligations: %w", err)
	}
	j.logger.InfoContext(ctx, "Reconciled approved obligations.", slog.Int("count", len(statements)))

	var (
		settledCount int32
		errorCount   int32
		mu           sync.Mutex
		overdueByID  = make(map[int64][]int64)
	)

	g := new(errgroup.Group)
	g.SetLimit(j.concurrency)

	for _, st := range statements {
		st := st // per-iteration copy (go 1.21 loop semantics)
		if st.Overdue() {
			mu.Lock()
			overdueByID[st.Obligation.MemberID] = append(overdueByID[st.Obligation.MemberID], st.Obligation.ID)
			mu.Unlock()
		}
		if !st.Summary.IsFullySettled || st.Summary.Indeterminate {
			continue
		}

		g.Go(func() error {
			logCtx := j.logger.With(slog.Int64("obligationID", st.Obligation.ID))
			changed, closeErr := j.obligationService.CloseSettled(ctx, st)
			if closeErr != nil {
				logCtx.ErrorContext(ctx, "Failed to close settled obligation", slog.Any("error", closeErr))
				atomic.AddInt32(&errorCount, 1)
				return closeErr
			}
			if changed {
				atomic.AddInt32(&settledCount, 1)
			}
			return nil
		})
	}
	firstErr := g.Wait()

	members, err := j.memberService.ListActiveMembers(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list active members, skipping overdue update.", slog.Any("error", err))
		return fmt.Errorf("failed to list active members: %w", err)
	}

	var overdueMembers, flagsChanged int32
	g = new(errgroup.Group)
	g.SetLimit(j.concurrency)

	for _, m := range members {
		m := m // per-iteration copy (go 1.21 loop semantics)
		overdueIDs := overdueByID[m.ID]
		isOverdue := len(overdueIDs) > 0
		if isOverdue {
			overdueMembers++
		}

		g.Go(func() error {
			changed, updateErr := j.memberService.UpdateOverdueStatus(ctx, m.ID, isOverdue, overdueIDs)
			if updateErr != nil {
				j.logger.ErrorContext(ctx, "Failed to update member overdue status",
					slog.Int64("memberID", m.ID), slog.Any("error", updateErr))
				atomic.AddInt32(&errorCount, 1)
				return updateErr
			}
			if changed {
				atomic.AddInt32(&flagsChanged, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil && firstErr == nil {
		firstErr = err
	}

	monitoring.RecordSweepSettled(int(settledCount))
	monitoring.SetOverdueMembers(int(overdueMembers))

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("approved_obligations", len(approved)),
		slog.Int("obligations_closed", int(settledCount)),
		slog.Int("members_checked", len(members)),
		slog.Int("members_overdue", int(overdueMembers)),
		slog.Int("overdue_flags_changed", int(flagsChanged)),
		slog.Int("errors_encountered", int(errorCount)),
	)
	if errorCount > 0 {
		summaryLog.WarnContext(ctx, "Obligation reconciliation job finished with errors.")
		return fmt.Errorf("job completed with %d errors: %w", errorCount, firstErr)
	}
	summaryLog.InfoContext(ctx, "Obligation reconciliation job finished successfully.")
	return nil
}
