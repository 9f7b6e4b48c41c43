package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/opsdesk/shiftdesk/internal/models"
)

// AuditWriter is the audit sink contract.
type AuditWriter interface {
	Insert(ctx context.Context, e *models.AuditEntry) error
}

// AuditService records audit entries fire-and-forget: a failed write is
// logged, never propagated to the caller.
type AuditService struct {
	writer AuditWriter
	logger *zap.Logger
}

func NewAuditService(writer AuditWriter, logger *zap.Logger) *AuditService {
	return &AuditService{writer: writer, logger: logger}
}

func (s *AuditService) Record(e models.AuditEntry) {
	if e.TS == 0 {
		e.TS = time.Now().UnixMilli()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.writer.Insert(ctx, &e); err != nil {
			s.logger.Warn("audit record dropped",
				zap.String("action", e.Action),
				zap.Error(err))
		}
	}()
}
