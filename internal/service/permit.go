package service

import (
	"context"

	"cemetery/internal/model"

	"go.uber.org/zap"
)

// PermitRepository is the storage a PermitService needs
type PermitRepository interface {
	CreatePermitSubmission(ctx context.Context, permit *model.PermitSubmission) error
}

// PermitService accepts permit submissions from the external permitting system
type PermitService struct {
	repo   PermitRepository
	logger *zap.Logger
}

// NewPermitService creates a permit service
func NewPermitService(repo PermitRepository, logger *zap.Logger) *PermitService {
	return &PermitService{repo: repo, logger: logger.Named("permit")}
}

// Submit stores permit on behalf of the API key named submittedBy
func (s *PermitService) Submit(ctx context.Context, permit *model.PermitSubmission, submittedBy string) error {
	permit.SubmittedBy = submittedBy
	if err := s.repo.CreatePermitSubmission(ctx, permit); err != nil {
		return err
	}

	s.logger.Info("permit submission received",
		zap.Int64("id", permit.ID),
		zap.String("external_id", permit.ExternalID),
		zap.String("permit_type", permit.PermitType),
		zap.String("submitted_by", submittedBy),
	)
	return nil
}
