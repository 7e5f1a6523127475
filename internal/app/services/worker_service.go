package services

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
)

// MaxTipAmount caps the amount pre-filled in a tip link.
const MaxTipAmount = 100000

// WorkerService serves the tipping roster. Tipping itself happens in the
// payer's UPI app; nothing is recorded here.
type WorkerService interface {
	ListWorkers(ctx context.Context) ([]*models.Worker, error)
	GetWorker(ctx context.Context, id string) (*models.Worker, error)
	TipLink(ctx context.Context, id, amount string) (*dto.TipLinkResponse, error)
}

type workerServiceImpl struct {
	workerRepo workerRepository
	logger     zerolog.Logger
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(workerRepo workerRepository, logger zerolog.Logger) WorkerService {
	return &workerServiceImpl{
		workerRepo: workerRepo,
		logger:     logger,
	}
}

func (s *workerServiceImpl) ListWorkers(ctx context.Context) ([]*models.Worker, error) {
	workers, err := s.workerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}
	return workers, nil
}

func (s *workerServiceImpl) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	return s.workerRepo.GetByID(ctx, id)
}

// TipLink builds the UPI deep link for a worker, optionally pre-filling an
// amount in rupees.
func (s *workerServiceImpl) TipLink(ctx context.Context, id, amount string) (*dto.TipLinkResponse, error) {
	normalized, err := normalizeAmount(amount)
	if err != nil {
		return nil, err
	}

	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.TipLinkResponse{
		WorkerID: worker.ID,
		Name:     worker.Name,
		UpiID:    worker.UpiID,
		Amount:   normalized,
		Link:     UPILink(worker.UpiID, worker.Name, normalized),
	}, nil
}

// UPILink renders upi://pay?pa=<upi>&pn=<name>&cu=INR, with &am=<amount>
// appended when amount is not empty.
func UPILink(upiID, name, amount string) string {
	link := "upi://pay?pa=" + upiEscape(upiID) + "&pn=" + upiEscape(name) + "&cu=INR"
	if amount != "" {
		link += "&am=" + upiEscape(amount)
	}
	return link
}

// upiEscape percent-encodes a query value but leaves '@' readable, as UPI
// apps expect handles like name@bank verbatim.
func upiEscape(v string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
	return strings.ReplaceAll(escaped, "%40", "@")
}

func normalizeAmount(amount string) (string, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return "", nil
	}

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 || value > MaxTipAmount {
		return "", fmt.Errorf("%w: amount must be a number between 0 and %d", apperrors.ErrValidationFailed, MaxTipAmount)
	}

	return strconv.FormatFloat(value, 'f', 2, 64), nil
}
