package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/cloudmorphix/console/internal"
	contactDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/contact"
)

type Repository interface {
	Create(sub *contactDatamodel.Submission) error
	List(limit, offset int) ([]*contactDatamodel.Submission, error)
}

type SubmitDTO struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	CompanyName string `json:"company_name" validate:"required"`
	Message     string `json:"message,omitempty"`
}

func (dto SubmitDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return internal.NewValidationError("email is not a valid email address", internal.ErrCodeInvalidEmail)
	}
	if strings.TrimSpace(dto.CompanyName) == "" {
		return internal.NewValidationError("company_name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Submit(ctx context.Context, dto SubmitDTO) (*Submission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &contactDatamodel.Submission{
		Name:        dto.Name,
		Email:       dto.Email,
		CompanyName: dto.CompanyName,
		Message:     dto.Message,
		SubmittedAt: time.Now(),
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to store contact submission", "error", err)
		return nil, fmt.Errorf("submit contact: %w", err)
	}

	s.logger.Info("contact submission received", "email", dto.Email)
	return FromDataModel(model), nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Submission, error) {
	models, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list contact submissions", "error", err)
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	subs := make([]*Submission, 0, len(models))
	for _, m := range models {
		subs = append(subs, FromDataModel(m))
	}
	return subs, nil
}
