package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/metrics"
	"github.com/Dan9191/bank-clients/internal/models"
)

// OverdueSource lists loans currently flagged overdue
type OverdueSource interface {
	ListOverdueLoans(ctx context.Context) ([]models.Loan, error)
}

// DigestSender delivers the overdue digest
type DigestSender interface {
	SendOverdueDigest(to string, loans []models.Loan) error
}

// OverdueDigest mails the overdue loan list to a fixed recipient
type OverdueDigest struct {
	loans     OverdueSource
	sender    DigestSender
	recipient string
	timeout   time.Duration
	log       *logrus.Logger
	metrics   *metrics.Metrics
}

func NewOverdueDigest(loans OverdueSource, sender DigestSender, recipient string, log *logrus.Logger, m *metrics.Metrics) *OverdueDigest {
	return &OverdueDigest{
		loans:     loans,
		sender:    sender,
		recipient: recipient,
		timeout:   30 * time.Second,
		log:       log,
		metrics:   m,
	}
}

// Run sends one digest. Nothing is sent when no loan is overdue.
func (j *OverdueDigest) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	loans, err := j.loans.ListOverdueLoans(ctx)
	if err != nil {
		return fmt.Errorf("failed to list overdue loans: %w", err)
	}
	if len(loans) == 0 {
		j.log.Debug("No overdue loans, digest skipped")
		return nil
	}

	if err := j.sender.SendOverdueDigest(j.recipient, loans); err != nil {
		return err
	}
	j.metrics.IncrementOverdueDigests()
	j.log.Infof("Overdue digest with %d loan(s) sent to %s", len(loans), j.recipient)
	return nil
}

// Schedule registers the digest on c using a standard five-field cron spec.
func Schedule(c *cron.Cron, spec string, job *OverdueDigest, log *logrus.Logger) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		if err := job.Run(context.Background()); err != nil {
			log.WithError(err).Error("Overdue digest failed")
		}
	})
	if err != nil {
		return 0, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	return id, nil
}
