package cron

import (
	"carwash/config"
	"carwash/inventory"
	"carwash/service"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// listed per kind in a notification before the rest is summarized
const maxListedIssues = 5

const defaultAuditInterval = time.Hour

type treeSource interface {
	GetCategoryTree(search string) (*inventory.Tree, error)
}

// CategoryAudit periodically rebuilds the category tree and tells the ops channel
// when the set of categories that cannot be placed changes.
type CategoryAudit struct {
	source     treeSource
	notifier   service.Notifier
	interval   time.Duration
	logger     *zap.Logger
	lastIssues string
}

// NewCategoryAudit falls back to an hourly audit when interval is not positive.
func NewCategoryAudit(source treeSource, notifier service.Notifier, interval time.Duration) *CategoryAudit {
	if interval <= 0 {
		interval = defaultAuditInterval
	}
	return &CategoryAudit{
		source:   source,
		notifier: notifier,
		interval: interval,
		logger:   config.Logger(),
	}
}

// Run audits right away and then once per interval until ctx is cancelled.
func (a *CategoryAudit) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		if err := a.Audit(); err != nil {
			a.logger.Error("category audit failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *CategoryAudit) Audit() error {
	tree, err := a.source.GetCategoryTree("")
	if err != nil {
		return err
	}
	summary := issueSummary(tree.Issues)
	if summary == a.lastIssues {
		return nil
	}
	message := "Category tree issues resolved, every category is placed again"
	if summary != "" {
		message = "Some warehouse categories cannot be placed in the tree:\n" + summary
	}
	if err := a.notifier.Notify(message); err != nil {
		return err
	}
	a.lastIssues = summary
	return nil
}

func issueSummary(issues []inventory.Issue) string {
	byKind := make(map[inventory.IssueKind][]string)
	kinds := make([]inventory.IssueKind, 0)
	for _, issue := range issues {
		if _, ok := byKind[issue.Kind]; !ok {
			kinds = append(kinds, issue.Kind)
		}
		byKind[issue.Kind] = append(byKind[issue.Kind], fmt.Sprintf("#%d", issue.CategoryID))
	}
	lines := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		ids := byKind[kind]
		line := fmt.Sprintf("%s: %s", kind, strings.Join(ids[:min(len(ids), maxListedIssues)], ", "))
		if len(ids) > maxListedIssues {
			line += fmt.Sprintf(" and %d more", len(ids)-maxListedIssues)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
