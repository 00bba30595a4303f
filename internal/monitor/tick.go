package monitor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"deskwatch/internal/deskapi"
	"deskwatch/internal/overdue"
	"deskwatch/pkg/platform/audit"
)

// snapshot holds one tick's view of the data service. It is re-fetched every
// tick and never assumed fresh beyond that.
type snapshot struct {
	assets   []deskapi.AssetLoan
	keys     []deskapi.KeyLoan
	hosts    []deskapi.Host
	settings *deskapi.Settings
}

func (m *Monitor) tick(ctx context.Context) (string, error) {
	ctx, span := m.tracer.Start(ctx, "monitor.tick")
	defer span.End()

	gateResult, err := m.gate.Check(ctx)
	if err != nil {
		return OutcomeAborted, fmt.Errorf("gate check: %w", err)
	}
	if gateResult.MarkerWritten && m.auditor != nil {
		m.auditor.Emit(ctx, audit.Event{
			Action:   audit.ActionGateReset,
			Decision: "marker_written",
		})
	}
	if gateResult.SessionCleared {
		// The duty session did not survive into locked hours. Drop all
		// transient state and start the next tick from scratch.
		m.setOnDuty(false)
		if m.metrics != nil {
			m.metrics.GateResets.Inc()
		}
		if m.auditor != nil {
			m.auditor.Emit(ctx, audit.Event{
				Action:   audit.ActionDutySessionCleared,
				Decision: "cleared",
			})
		}
		return OutcomeReset, nil
	}

	sn, err := m.fetchSnapshot(ctx)
	if err != nil {
		if m.auditor != nil {
			m.auditor.Emit(ctx, audit.Event{
				Action:   audit.ActionTickAborted,
				Decision: "aborted",
				Reason:   err.Error(),
			})
		}
		return OutcomeAborted, err
	}

	if !sn.settings.NotificationsEnabled {
		return OutcomeDisabled, nil
	}

	now := m.clock()
	assetViolations := overdue.Assets(sn.assets, now)
	keyViolations := overdue.Keys(sn.keys, now)

	if m.metrics != nil {
		m.metrics.IncViolations(string(overdue.KindAsset), len(assetViolations))
		m.metrics.IncViolations(string(overdue.KindKey), len(keyViolations))
	}

	violations := append(assetViolations, keyViolations...)
	if len(violations) == 0 {
		return OutcomeCompleted, nil
	}

	result := m.dispatcher.Dispatch(ctx, sn.settings, sn.hosts, violations)
	if m.logger != nil {
		m.logger.InfoContext(ctx, "overdue scan dispatched",
			"violations", len(violations),
			"delivered", result.Delivered,
			"failed", len(result.Failed),
		)
	}

	return OutcomeCompleted, nil
}

// fetchSnapshot issues the four reads concurrently. Loan and host failures
// degrade to empty slices so one slow endpoint cannot suppress the other
// rules; a settings failure aborts the tick because without settings the
// monitor cannot know whether notifications are enabled, or as whom to send.
func (m *Monitor) fetchSnapshot(ctx context.Context) (*snapshot, error) {
	sn := &snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		loans, err := m.api.ListAssetLoans(gctx)
		if err != nil {
			m.degrade(gctx, "assets", err)
			return nil
		}
		sn.assets = loans
		return nil
	})

	g.Go(func() error {
		loans, err := m.api.ListKeyLoans(gctx)
		if err != nil {
			m.degrade(gctx, "keys", err)
			return nil
		}
		sn.keys = loans
		return nil
	})

	g.Go(func() error {
		hosts, err := m.api.ListHosts(gctx)
		if err != nil {
			m.degrade(gctx, "hosts", err)
			return nil
		}
		sn.hosts = hosts
		return nil
	})

	g.Go(func() error {
		settings, err := m.api.GetSettings(gctx)
		if err == nil && settings == nil {
			err = fmt.Errorf("empty settings response")
		}
		if err != nil {
			if m.metrics != nil {
				m.metrics.IncSnapshotFailure("settings")
			}
			return fmt.Errorf("get settings: %w", err)
		}
		sn.settings = settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sn, nil
}

func (m *Monitor) degrade(ctx context.Context, source string, err error) {
	if m.metrics != nil {
		m.metrics.IncSnapshotFailure(source)
	}
	if m.auditor != nil {
		m.auditor.Emit(ctx, audit.Event{
			Action:   audit.ActionSnapshotDegraded,
			Subject:  source,
			Decision: "degraded",
			Reason:   err.Error(),
		})
	}
	if m.logger != nil {
		m.logger.WarnContext(ctx, "snapshot fetch degraded to empty", "source", source, "error", err)
	}
}
